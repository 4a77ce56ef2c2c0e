package appointments

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const idPrefix = "APT-"

// NewID generates an appointment identifier: the millisecond timestamp in
// base36 plus a short random suffix, uppercased. Collision-resistant at
// clinic booking volume.
func NewID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	var sb strings.Builder
	for i := 0; i < 3; i++ {
		sb.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}
	return idPrefix + strings.ToUpper(ts+sb.String())
}
