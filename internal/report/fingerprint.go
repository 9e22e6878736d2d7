package report

import (
	"bytes"
	"encoding/hex"

	"github.com/nao1215/linkcheck/internal/model"
	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns the hex BLAKE2b-256 digest of the full text report.
// Two runs over identical trees have the same fingerprint, so the run
// history shows at a glance whether anything changed.
func Fingerprint(result *model.Result) (string, error) {
	var buf bytes.Buffer
	if _, err := NewSimpleWriter(&buf, WithAllReferrers()).Write(result); err != nil {
		return "", err
	}
	sum := blake2b.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}
