package hotelcore

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"hotelcore/internal/wire"
)

// nameWords seeds the generated first-login display name. The server only
// requires *some* plausible, unique-looking name; the exact vocabulary is
// cosmetic.
var nameWords = []string{
	"nova", "echo", "pixel", "comet", "drift", "ember", "quartz", "raven",
	"solar", "tide", "vapor", "zephyr", "cobalt", "lumen", "orbit", "spark",
}

// runPersonalizationFlow is the automated first-login sequence: set
// appearance, then name, then starter room, each separated by a fixed
// sleep matching the server's own client's pacing. It runs at most once
// per session (see personalizeOnce in dispatch.go).
func (s *Session) runPersonalizationFlow() {
	time.Sleep(2000 * time.Millisecond)
	gender, figure := s.pickAppearance()
	if figure != "" {
		s.send(wire.NewOutFrame(s.cfg.Outgoing.UpdateFigure).
			WriteString(gender).
			WriteString(figure))
	}

	time.Sleep(1500 * time.Millisecond)
	name := generateName()
	s.send(wire.NewOutFrame(s.cfg.Outgoing.ChangeName).WriteString(name))

	time.Sleep(1500 * time.Millisecond)
	s.send(wire.NewOutFrame(s.cfg.Outgoing.SelectInitRoom).WriteString("12"))
}

func (s *Session) pickAppearance() (gender, figure string) {
	if len(s.cfg.Appearances) == 0 {
		return "", ""
	}
	var genders []string
	byGender := make(map[string][]string)
	for _, a := range s.cfg.Appearances {
		if _, seen := byGender[a.Gender]; !seen {
			genders = append(genders, a.Gender)
		}
		byGender[a.Gender] = append(byGender[a.Gender], a.Figure)
	}
	gender = genders[rand.Intn(len(genders))]
	figures := byGender[gender]
	return gender, figures[rand.Intn(len(figures))]
}

// generateName builds word+number+word, shrinking the number and finally
// truncating until the result is at most 15 characters.
func generateName() string {
	w1 := nameWords[rand.Intn(len(nameWords))]
	w2 := nameWords[rand.Intn(len(nameWords))]

	for digits := 4; digits >= 1; digits-- {
		max := 1
		for i := 0; i < digits; i++ {
			max *= 10
		}
		n := rand.Intn(max)
		name := fmt.Sprintf("%s%s%s", w1, strconv.Itoa(n), w2)
		if len(name) <= 15 {
			return name
		}
	}

	name := w1 + w2
	if len(name) > 15 {
		name = name[:15]
	}
	return name
}
