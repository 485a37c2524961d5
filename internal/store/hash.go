package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/roach88/sruq/internal/config"
)

// DomainSnapshot separates snapshot hashes from any other use of SHA-256
// over the same bytes.
const DomainSnapshot = "sruq/snapshot/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// canonicalBody returns the stored form of cfg. Credentials are dropped.
func canonicalBody(cfg *config.Configuration) ([]byte, error) {
	stripped := cfg.Clone()
	stripped.Username = ""
	stripped.Password = ""

	doc, err := stripped.ToMap()
	if err != nil {
		return nil, fmt.Errorf("convert configuration: %w", err)
	}
	return MarshalCanonical(doc)
}

// ContentHash is the content-addressed identity of a configuration.
func ContentHash(cfg *config.Configuration) (string, error) {
	body, err := canonicalBody(cfg)
	if err != nil {
		return "", err
	}
	return hashWithDomain(DomainSnapshot, body), nil
}
