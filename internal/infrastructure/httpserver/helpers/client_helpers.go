package helpers

import (
	"encoding/base64"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sanatanigyan/granthalaya/internal/core/ports"
)

// fingerprintLength truncates the encoded fingerprint, matching the
// width of the rate-limit bucket keys.
const fingerprintLength = 32

// ClientFingerprint derives a coarse, non-cryptographic client
// identifier from request signals. It is neither unique nor stable and
// is used only as a rate-limit bucket and tracking key, never as a
// credential.
func ClientFingerprint(c echo.Context) string {
	req := c.Request()
	seed := strings.Join([]string{
		c.RealIP(),
		req.UserAgent(),
		req.Header.Get("Accept-Language"),
		req.Header.Get("Sec-Ch-Ua"),
	}, "_")

	fp := base64.StdEncoding.EncodeToString([]byte(seed))
	if len(fp) > fingerprintLength {
		fp = fp[:fingerprintLength]
	}
	return fp
}

// ClientMetaFromContext collects the client signals carried into the
// service layer for throttling and audit records.
func ClientMetaFromContext(c echo.Context) *ports.ClientMeta {
	return &ports.ClientMeta{
		ClientID:  ClientFingerprint(c),
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}
