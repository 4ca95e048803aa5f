package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"autocrm/internal/shared/biztime"
)

// URLSigner mints and verifies short-lived HMAC-signed download URLs so
// attachment downloads do not need an Authorization header.
type URLSigner struct {
	secret  []byte
	baseURL string
	ttl     time.Duration
}

func NewURLSigner(secret, baseURL string, ttl time.Duration) (*URLSigner, error) {
	if secret == "" {
		return nil, fmt.Errorf("signing secret is required")
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	return &URLSigner{
		secret:  []byte(secret),
		baseURL: baseURL,
		ttl:     ttl,
	}, nil
}

// Sign returns a download URL for the attachment SID, valid until the TTL
// elapses.
func (s *URLSigner) Sign(attachmentSID string) (string, error) {
	if attachmentSID == "" {
		return "", fmt.Errorf("attachment SID is required")
	}

	expires := biztime.NowUTC().Add(s.ttl).Unix()
	sig := s.signature(attachmentSID, expires)

	q := url.Values{}
	q.Set("expires", strconv.FormatInt(expires, 10))
	q.Set("sig", sig)

	return fmt.Sprintf("%s/api/attachments/%s/download?%s", s.baseURL, attachmentSID, q.Encode()), nil
}

// Verify checks the signature and expiry for an attachment download request.
func (s *URLSigner) Verify(attachmentSID string, expires int64, sig string) error {
	if biztime.NowUTC().Unix() > expires {
		return fmt.Errorf("download link has expired")
	}

	expected := s.signature(attachmentSID, expires)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return fmt.Errorf("invalid download signature")
	}

	return nil
}

func (s *URLSigner) signature(attachmentSID string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s:%d", attachmentSID, expires)
	return hex.EncodeToString(mac.Sum(nil))
}
