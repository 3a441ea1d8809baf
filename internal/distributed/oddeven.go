package distributed

import (
	"fmt"
	"sort"

	"github.com/cwbudde/gosplat/internal/transport"
)

// OddEvenSort runs World rounds of an odd-even transposition network
// over equal-length Record slices, one per rank, ordering them globally
// by ascending Depth. Every rank must call it with a slice of the same
// length (pad with sentinel() records first). After it returns, rank 0
// holds the globally-smallest-depth slice, rank World-1 the
// globally-largest.
func OddEvenSort(t transport.Transport, local []Record) ([]Record, error) {
	n := len(local)
	rank, world := t.Rank(), t.Size()

	cur := append([]Record(nil), local...)
	sortByDepth(cur)

	for phase := 0; phase < world; phase++ {
		partner := -1
		if phase%2 == 0 {
			if rank%2 == 0 {
				partner = rank + 1
			} else {
				partner = rank - 1
			}
		} else {
			if rank%2 == 0 {
				partner = rank - 1
			} else {
				partner = rank + 1
			}
		}
		if partner < 0 || partner >= world {
			continue
		}

		sendBuf := marshalAll(cur)
		recvBuf := make([]byte, len(sendBuf))

		if rank < partner {
			if err := t.Send(sendBuf, partner, transport.TagSort); err != nil {
				return nil, fmt.Errorf("distributed: odd-even phase %d send to %d: %w", phase, partner, err)
			}
			if err := t.Recv(recvBuf, partner, transport.TagSort); err != nil {
				return nil, fmt.Errorf("distributed: odd-even phase %d recv from %d: %w", phase, partner, err)
			}
		} else {
			if err := t.Recv(recvBuf, partner, transport.TagSort); err != nil {
				return nil, fmt.Errorf("distributed: odd-even phase %d recv from %d: %w", phase, partner, err)
			}
			if err := t.Send(sendBuf, partner, transport.TagSort); err != nil {
				return nil, fmt.Errorf("distributed: odd-even phase %d send to %d: %w", phase, partner, err)
			}
		}

		other := unmarshalAll(recvBuf)
		merged := mergeSorted(cur, other)
		if rank < partner {
			cur = merged[:n]
		} else {
			cur = merged[len(merged)-n:]
		}
	}

	return cur, nil
}

func sortByDepth(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Depth < recs[j].Depth })
}

// mergeSorted merges two already depth-sorted slices of equal length.
func mergeSorted(a, b []Record) []Record {
	out := make([]Record, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].Depth <= b[j].Depth {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
