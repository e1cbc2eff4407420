package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/loci/core"
)

// Key prefixes for different data types
const (
	feedbackPrefix     = "fbrec"
	feedbackUserPrefix = "fbrecu"
	feedbackIDSeq      = "fbrecseq"
)

// makeFeedbackKey generates a key for a feedback event by ID.
func makeFeedbackKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", feedbackPrefix, id))
}

// makeFeedbackUserKey generates a composite key for the per-user time index.
// Format: prefix:userID:timestamp:id
func makeFeedbackUserKey(userID string, timestamp time.Time, id core.ID) []byte {
	prefix := feedbackUserPrefix + ":" + userID + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialFeedbackUserKey generates a partial key for per-user queries.
// Format: prefix:userID:timestamp
func makePartialFeedbackUserKey(userID string, timestamp time.Time) []byte {
	prefix := feedbackUserPrefix + ":" + userID + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// feedbackUserKeyPrefix returns the prefix covering every index entry for a user.
func feedbackUserKeyPrefix(userID string) []byte {
	return []byte(feedbackUserPrefix + ":" + userID + ":")
}
