package document

import "github.com/matzehuels/snapshoot/pkg/cache"

// volatileAttrs are root attributes that change on every export without
// the graph changing.
var volatileAttrs = []string{"exportTime"}

// Digest returns a SHA-256 hex digest of the XML form of d with the
// export timestamp blanked. Two exports of an unchanged graph under the
// same options share a digest.
func Digest(d *Document) (string, error) {
	stable := d
	if d.Root != nil {
		stable = d.Clone()
		for _, name := range volatileAttrs {
			if hasAttr(stable.Root, name) {
				stable.Root.Set(name, "")
			}
		}
	}
	data, err := MarshalXML(stable)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}
