package stats

import (
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		turns []int
		mean  float64
		stdev float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, v := range c.turns {
			s.Push(float64(v))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.Equal(s.Iterations(), len(c.turns))
	}
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(0), 0))
	is.True(ZVal(95) > 1.959 && ZVal(95) < 1.961)
	is.True(ZVal(99) > ZVal(95))
}

func TestWinRate(t *testing.T) {
	is := is.New(t)
	p, margin := WinRate(50, 100, 95)
	is.True(FuzzyEqual(p, 0.5))
	// 1.96 * sqrt(0.25/100)
	is.True(margin > 0.0979 && margin < 0.0981)

	p, margin = WinRate(10, 10, 95)
	is.True(FuzzyEqual(p, 1))
	is.True(FuzzyEqual(margin, 0))

	p, margin = WinRate(0, 0, 95)
	is.Equal(p, 0.0)
	is.Equal(margin, 0.0)
}
