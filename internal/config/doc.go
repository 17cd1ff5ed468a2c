// Package config loads the YAML manifest that describes nginx locations and
// the defaults the compiler applies to them.
//
// # Manifest
//
//	staging_dir: /etc/nginx/fragments.d
//	defaults:
//	  proxy_read_timeout: 90s
//	  index_files: [index.html, index.htm]
//	locations:
//	  - vhost: example.com
//	    name: root
//	    location: /
//	    www_root: /var/www/example
//	    ssl: true
//	  - vhost: example.com
//	    name: api
//	    location: /api/
//	    proxy: 127.0.0.1:3000
//	    websocket_upgrade: true
//	  - vhost: example.com
//	    name: old
//	    ensure: absent
//	    www_root: /var/www/old
//
// ParseManifest rejects unknown keys and checks field formats (absolute
// paths, ensure values, nginx time values, file-safe names). It does not
// check that a location names its vhost or has exactly one content
// source: those are location rules and are reported by the compiler.
//
// # Defaults
//
// Values left out of the defaults section fall back to NewDefaults().
// Defaults().Location() is what gets passed to location.NewCompiler, so no
// default lives in package state.
package config
