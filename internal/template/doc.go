// Package template renders nginx location fragments from embedded Go
// templates. It is the Renderer used by the location compiler.
//
// # Template Organization
//
// One template per content strategy, plus shared partials:
//
//	nginx/proxy.tmpl        proxy_pass to an upstream
//	nginx/alias.tmpl        alias (AliasRoot or LocationAlias)
//	nginx/directory.tmpl    root + index (WwwRoot)
//	nginx/stub_status.tmpl  stub_status on
//	nginx/common.tmpl       "prepend" and "append" raw directive blocks
//
// # Rendering
//
//	r, err := template.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	compiler := location.NewCompiler(r, defaults)
//
// Raw prepend/append directives are emitted in key order, so the same
// spec always renders to the same bytes.
//
// # Custom Functions
//
//   - join: strings.Join for index and try_files lists
package template
