package domain

import (
	"crypto/rand"
	"math/big"
)

const (
	pnrChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	pnrLength = 6
)

// GeneratePNR returns a 6 character record locator. Uniqueness is enforced
// by the database constraint on bookings.pnr, not here.
func GeneratePNR() string {
	buf := make([]byte, pnrLength)
	max := big.NewInt(int64(len(pnrChars)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the platform source is broken;
			// fall back to a fixed char rather than panic in request path.
			buf[i] = pnrChars[0]
			continue
		}
		buf[i] = pnrChars[n.Int64()]
	}
	return string(buf)
}
