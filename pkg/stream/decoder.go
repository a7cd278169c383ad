// Package stream decodes the analysis backend's incremental response
// protocol: an event stream of lines prefixed with "data: ", each carrying a
// JSON payload with a type field. Chunks can split lines anywhere, so the
// decoder keeps a carry-over buffer for the trailing partial line.
package stream

import (
	"encoding/json"
	"strings"

	"promo-insights-be/internal/dto"
)

const marker = "data: "

// Decoder is a small accumulate-split-dispatch state machine. Feed it raw
// chunks in arrival order; it returns the complete events found so far.
type Decoder struct {
	carry string

	// OnSkip is called for lines carrying the marker whose payload fails to
	// parse as JSON. Such lines are skipped, not fatal. Optional.
	OnSkip func(line string, err error)
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed appends a chunk and returns all events completed by it. Lines not
// matching the marker are ignored.
func (d *Decoder) Feed(chunk []byte) []dto.StreamEvent {
	d.carry += string(chunk)

	var events []dto.StreamEvent
	for {
		idx := strings.IndexByte(d.carry, '\n')
		if idx < 0 {
			break
		}
		line := strings.TrimRight(d.carry[:idx], "\r")
		d.carry = d.carry[idx+1:]

		if ev, ok := d.decodeLine(line); ok {
			events = append(events, ev)
		}
	}
	return events
}

// Flush decodes whatever remains in the carry buffer as a final line. Call
// once at end of stream.
func (d *Decoder) Flush() []dto.StreamEvent {
	line := strings.TrimRight(d.carry, "\r")
	d.carry = ""
	if ev, ok := d.decodeLine(line); ok {
		return []dto.StreamEvent{ev}
	}
	return nil
}

func (d *Decoder) decodeLine(line string) (dto.StreamEvent, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, marker) {
		return dto.StreamEvent{}, false
	}
	payload := line[len(marker):]

	var ev dto.StreamEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		if d.OnSkip != nil {
			d.OnSkip(line, err)
		}
		return dto.StreamEvent{}, false
	}
	return ev, true
}
