package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

// Clock é a fonte de "agora" do motor de agenda; injetável nos testes.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock sempre devolve o mesmo instante.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NowIn devolve o instante do relógio no fuso da filial.
func NowIn(clock Clock, tz string) time.Time {
	return clock.Now().In(Location(tz))
}
