package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	MinutesPerDay = 24 * 60
)

// TimeOfDay é um horário de parede em minutos desde a meia-noite.
type TimeOfDay int

func ParseTimeOfDay(hm string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(hm), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time of day %q", hm)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", hm)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid minute in %q", hm)
	}

	return TimeOfDay(hour*60 + minute), nil
}

// TimeOfDayOf arredonda para cima até o próximo minuto cheio.
func TimeOfDayOf(ts time.Time) TimeOfDay {
	t := TimeOfDay(ts.Hour()*60 + ts.Minute())
	if ts.Second() > 0 || ts.Nanosecond() > 0 {
		t++
	}
	return t
}

func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ParseDate devolve a data civil como meia-noite UTC; todas as datas
// de domínio usam essa forma para comparar dia/mês/ano sem fuso.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// DateOf extrai a data civil de um instante no fuso em que ele já está.
func DateOf(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// At monta o instante de parede de uma data civil num fuso.
func At(date time.Time, t TimeOfDay, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}
