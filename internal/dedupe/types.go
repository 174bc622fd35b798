// Package dedupe is the duplicate-detection engine: directory collection,
// content digesting, multi-criterion grouping and key description. It has no
// knowledge of deletion or presentation; callers pass plain configuration
// values in and receive freshly built results back.
package dedupe

import (
	"strings"
	"time"

	"github.com/fenilsonani/dupesweep/pkg/utils"
)

// FileRecord represents one file observed during a scan. Records are
// immutable once created and live only for the duration of a scan.
type FileRecord struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Kind identifies which criterion a key component carries.
type Kind uint8

const (
	KindNone Kind = iota
	KindHash
	KindSize
	KindName
	KindMtime
	KindMime
)

// Component is a single tagged criterion value inside a grouping key.
// Str carries hash, name and mime values; Int carries size and mtime.
type Component struct {
	Kind Kind
	Str  string
	Int  int64
}

func HashComponent(digest string) Component { return Component{Kind: KindHash, Str: digest} }
func SizeComponent(size int64) Component    { return Component{Kind: KindSize, Int: size} }
func NameComponent(name string) Component   { return Component{Kind: KindName, Str: name} }
func MtimeComponent(unix int64) Component   { return Component{Kind: KindMtime, Int: unix} }
func MimeComponent(mime string) Component   { return Component{Kind: KindMime, Str: mime} }

// maxComponents: hash, size, name, mtime, mime.
const maxComponents = 5

// Key is an ordered composite of criterion components. The grouper always
// appends components in hash, size, name, mtime, mime order, so struct
// equality is exactly key equality and a Key can serve as a map key.
// A Key with no components never identifies a group.
type Key struct {
	parts [maxComponents]Component
	n     int
}

// NewKey builds a key from components in the given order. The grouper is the
// normal producer; this exists for callers that rebuild keys in reports and
// tests.
func NewKey(components ...Component) Key {
	var k Key
	for _, c := range components {
		k.append(c)
	}
	return k
}

func (k *Key) append(c Component) {
	k.parts[k.n] = c
	k.n++
}

// Len returns the number of components in the key.
func (k Key) Len() int { return k.n }

// Components returns the key's components in order.
func (k Key) Components() []Component { return k.parts[:k.n] }

// Criteria selects which file attributes participate in grouping.
type Criteria struct {
	Hash  bool
	Size  bool
	Name  bool
	Mtime bool
	Mime  bool
}

// Any reports whether at least one criterion is enabled.
func (c Criteria) Any() bool {
	return c.Hash || c.Size || c.Name || c.Mtime || c.Mime
}

// Outcome is the grouper's result: every duplicate group found, plus the
// number of files whose content hashing was skipped because they exceeded
// the configured cap. Every group holds at least two records.
type Outcome struct {
	Groups      map[Key][]FileRecord
	HashSkipped int
}

// DescribeKey formats a human-readable description of a grouping key, one
// fragment per component joined with " | ".
func DescribeKey(k Key) string {
	parts := make([]string, 0, k.Len())
	for _, c := range k.Components() {
		switch c.Kind {
		case KindHash:
			digest := c.Str
			if len(digest) > 8 {
				digest = digest[:8]
			}
			parts = append(parts, "sha256 "+digest+"...")
		case KindSize:
			parts = append(parts, "size "+utils.FormatBytes(c.Int))
		case KindName:
			parts = append(parts, "name "+c.Str)
		case KindMtime:
			parts = append(parts, "mtime "+time.Unix(c.Int, 0).Format("2006-01-02 15:04:05"))
		case KindMime:
			parts = append(parts, "mime "+c.Str)
		}
	}
	return strings.Join(parts, " | ")
}
