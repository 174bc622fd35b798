package dedupe

import (
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/fenilsonani/dupesweep/pkg/utils"
)

// Grouper partitions file records into duplicate groups under the enabled
// criteria. The zero value with a Criteria set is ready to use.
type Grouper struct {
	Criteria Criteria
	// HashCap is the largest file size, in bytes, that will be content
	// hashed. Zero or negative means no cap.
	HashCap int64
	// Digest overrides the content digester. Defaults to utils.HashFile.
	Digest func(path string) (string, error)
	// Progress, when set, is called after each record in a hash-active
	// bucket has been considered.
	Progress func(done, total int)
}

// GroupDuplicates groups records under the given criteria with an optional
// hash size cap (0 = no cap) and returns only groups with 2+ members.
func GroupDuplicates(records []FileRecord, criteria Criteria, hashCap int64) Outcome {
	g := Grouper{Criteria: criteria, HashCap: hashCap}
	return g.Group(records)
}

// Group partitions records into duplicate groups.
//
// When hashing is enabled, records are first bucketed by exact byte size:
// two files of different size can never be content-identical, so hashing is
// only attempted inside a bucket with more than one member. A record whose
// digest fails is dropped entirely; a record skipped by the hash cap keeps
// its remaining criteria and bumps the skipped counter.
func (g *Grouper) Group(records []FileRecord) Outcome {
	out := Outcome{Groups: make(map[Key][]FileRecord)}
	if !g.Criteria.Any() {
		return out
	}

	digest := g.Digest
	if digest == nil {
		digest = utils.HashFile
	}

	var buckets [][]FileRecord
	if g.Criteria.Hash {
		bySize := make(map[int64][]FileRecord)
		for _, rec := range records {
			bySize[rec.Size] = append(bySize[rec.Size], rec)
		}
		buckets = make([][]FileRecord, 0, len(bySize))
		for _, bucket := range bySize {
			buckets = append(buckets, bucket)
		}
	} else {
		buckets = [][]FileRecord{records}
	}

	// Only records in hash-active buckets count toward progress.
	hashTotal := 0
	if g.Criteria.Hash {
		for _, bucket := range buckets {
			if len(bucket) > 1 {
				hashTotal += len(bucket)
			}
		}
	}
	hashDone := 0

	for _, bucket := range buckets {
		hashHere := g.Criteria.Hash && len(bucket) > 1

		for _, rec := range bucket {
			var key Key

			if hashHere {
				if g.HashCap > 0 && rec.Size > g.HashCap {
					out.HashSkipped++
					hashDone++
					g.report(hashDone, hashTotal)
				} else {
					sum, err := digest(rec.Path)
					hashDone++
					g.report(hashDone, hashTotal)
					if err != nil {
						// Unreadable content: the record cannot be
						// grouped safely under any criterion.
						continue
					}
					key.append(HashComponent(sum))
				}
			}
			if g.Criteria.Size {
				key.append(SizeComponent(rec.Size))
			}
			if g.Criteria.Name {
				key.append(NameComponent(NormalizeName(filepath.Base(rec.Path))))
			}
			if g.Criteria.Mtime {
				key.append(MtimeComponent(rec.ModTime.Unix()))
			}
			if g.Criteria.Mime {
				key.append(MimeComponent(detectMime(rec.Path)))
			}

			if key.Len() == 0 {
				continue
			}
			out.Groups[key] = append(out.Groups[key], rec)
		}
	}

	for key, group := range out.Groups {
		if len(group) < 2 {
			delete(out.Groups, key)
		}
	}
	return out
}

func (g *Grouper) report(done, total int) {
	if g.Progress != nil {
		g.Progress(done, total)
	}
}

// detectMime sniffs a file's MIME type from its leading bytes.
func detectMime(path string) string {
	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return "unknown"
	}
	return mime.String()
}
