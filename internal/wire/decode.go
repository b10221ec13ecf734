package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is one decoded segment of the inbound stream. Exactly one of
// Reply or Err is meaningful: a segment that failed to parse carries
// the error and the raw bytes so the caller can log and continue.
type Record struct {
	Reply Reply
	Err   error
	Raw   []byte
}

// Decode splits carry+buf on the record separator, parses every
// complete segment independently, and returns the trailing incomplete
// segment as the new carry. It is a pure function of its inputs: the
// caller holds the carry between reads.
func Decode(buf, carry []byte) ([]Record, []byte) {
	data := buf
	if len(carry) > 0 {
		data = append(append(make([]byte, 0, len(carry)+len(buf)), carry...), buf...)
	}

	var records []Record
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		segment := data[:i]
		data = data[i+1:]
		if len(bytes.TrimSpace(segment)) == 0 {
			continue
		}
		records = append(records, parseSegment(segment))
	}

	newCarry := append([]byte(nil), data...)
	return records, newCarry
}

func parseSegment(segment []byte) Record {
	var reply Reply
	if err := json.Unmarshal(segment, &reply); err != nil {
		return Record{
			Err: fmt.Errorf("parsing reply record: %w", err),
			Raw: append([]byte(nil), segment...),
		}
	}
	return Record{Reply: reply}
}
