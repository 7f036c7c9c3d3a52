package roads

import (
	"fmt"

	"github.com/sells-group/layout-cli/internal/model"
)

// Name returns a copy of segs with names derived from kind and position:
// "Street N", "Avenue A".."Avenue Z" (cycling), "Radial Road N",
// "Ring Road i" or "Ring Road i-A".. when a ring is split by the boundary,
// "Drive N", "Lane N" and "Boulevard N".
func Name(segs []model.RoadSegment) []model.RoadSegment {
	ringPieces := map[int]int{}
	for _, s := range segs {
		if s.Kind == model.KindRing {
			ringPieces[s.Group]++
		}
	}

	out := make([]model.RoadSegment, len(segs))
	seen := map[model.RoadKind]int{}
	ringSeen := map[int]int{}
	for i, s := range segs {
		n := seen[s.Kind]
		seen[s.Kind]++
		switch s.Kind {
		case model.KindStreet:
			s.Name = fmt.Sprintf("Street %d", n+1)
		case model.KindAvenue:
			s.Name = "Avenue " + letter(n)
		case model.KindRadial:
			s.Name = fmt.Sprintf("Radial Road %d", n+1)
		case model.KindRing:
			k := ringSeen[s.Group]
			ringSeen[s.Group]++
			if ringPieces[s.Group] == 1 {
				s.Name = fmt.Sprintf("Ring Road %d", s.Group)
			} else {
				s.Name = fmt.Sprintf("Ring Road %d-%s", s.Group, letter(k))
			}
		case model.KindDrive:
			s.Name = fmt.Sprintf("Drive %d", n+1)
		case model.KindLane:
			s.Name = fmt.Sprintf("Lane %d", n+1)
		case model.KindConnector:
			s.Name = fmt.Sprintf("Boulevard %d", n+1)
		default:
			s.Name = fmt.Sprintf("Road %d", i+1)
		}
		out[i] = s
	}
	return out
}

// letter returns A..Z, cycling after Z.
func letter(i int) string {
	return string(rune('A' + i%26))
}
