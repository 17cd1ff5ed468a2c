package location

import (
	"fmt"
	"strings"
)

// Priority orders location fragments after the vhost header fragments and
// before the catch-all footer. The value belongs to the staging directory
// convention and is never computed.
const Priority = 500

// SecureSuffix marks the secure-transport fragment of a location.
const SecureSuffix = "-secure"

// idSeparator joins the vhost to the rest of a rendered id.
var idSeparator = fmt.Sprintf("-%d-", Priority)

// UnambiguousVHost reports whether ids rendered for vhost split back to it.
// A vhost containing the separator, or ending in its leading part (for
// example "site-500"), would make its ids indistinguishable from ids of a
// shorter vhost.
func UnambiguousVHost(vhost string) bool {
	return !strings.Contains(vhost+"-", idSeparator)
}

// SplitFragmentID splits a rendered id at its first separator into the vhost
// and the name with any secure suffix. The split is exact for vhosts that
// satisfy UnambiguousVHost.
func SplitFragmentID(id string) (vhost, rest string, ok bool) {
	i := strings.Index(id, idSeparator)
	if i < 0 {
		return "", "", false
	}
	return id[:i], id[i+len(idSeparator):], true
}

// FragmentID identifies one staged fragment.
type FragmentID struct {
	VHost    string
	Priority int
	Name     string
	Secure   bool
}

// String renders the id as "{vhost}-{priority}-{name}[-secure]". The
// assembler sorts on this exact string.
func (id FragmentID) String() string {
	s := fmt.Sprintf("%s-%d-%s", id.VHost, id.Priority, id.Name)
	if id.Secure {
		s += SecureSuffix
	}
	return s
}

// FragmentIDs returns the ids spec stages, plaintext first. SSLOnly drops
// the plaintext id; SSL adds the secure one. SSLOnly without SSL yields
// no ids at all.
func FragmentIDs(spec Spec) []FragmentID {
	ids := make([]FragmentID, 0, 2)
	if !spec.SSLOnly {
		ids = append(ids, FragmentID{VHost: spec.VHost, Priority: Priority, Name: spec.Name})
	}
	if spec.SSL {
		ids = append(ids, FragmentID{VHost: spec.VHost, Priority: Priority, Name: spec.Name, Secure: true})
	}
	return ids
}
