package crg_test

import (
	"math"
	"testing"
	"time"

	"github.com/db47h/socsim/crg"
	"github.com/db47h/socsim/hwlib"
	"github.com/pkg/errors"
)

func TestNew_frequency(t *testing.T) {
	td := []struct {
		name    string
		cfg     crg.Config
		err     bool
		badFreq bool
	}{
		{"validated", crg.Config{ClockName: "clk12", Freq: 12e6, ValidatedFreqs: []float64{12e6}, RequireFreq: true}, false, false},
		{"validated_rounding", crg.Config{ClockName: "clk12", Freq: 12000000.000001, ValidatedFreqs: []float64{12e6}, RequireFreq: true}, false, false},
		{"mismatch", crg.Config{ClockName: "clk12", Freq: 24e6, ValidatedFreqs: []float64{12e6}, RequireFreq: true}, true, true},
		{"unchecked", crg.Config{ClockName: "clk50", Freq: 48e6, ValidatedFreqs: []float64{50e6}}, false, false},
		{"no_clock", crg.Config{Freq: 12e6}, true, false},
		{"zero_freq", crg.Config{ClockName: "clk12"}, true, false},
		{"nan_freq", crg.Config{ClockName: "clk12", Freq: math.NaN()}, true, false},
		{"wide_counter", crg.Config{ClockName: "clk12", Freq: 12e6, CounterBits: crg.MaxCounterBits + 1}, true, false},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := crg.New(d.cfg)
			if (err != nil) != d.err {
				t.Fatalf("got error %v, expected error: %v", err, d.err)
			}
			_, ok := errors.Cause(err).(*crg.ConfigurationMismatch)
			if ok != d.badFreq {
				t.Fatalf("got error %v, expected ConfigurationMismatch: %v", err, d.badFreq)
			}
		})
	}
}

func TestConfigurationMismatch_Error(t *testing.T) {
	_, err := crg.New(crg.Config{ClockName: "clk12", Freq: 25e6, ValidatedFreqs: []float64{12e6}, RequireFreq: true})
	exp := "clock clk12: frequency 25 MHz does not match validated frequencies [12 MHz]"
	if err == nil || err.Error() != exp {
		t.Fatalf("got error %q, expected %q", err, exp)
	}
}

func TestCRG_constraints(t *testing.T) {
	c, err := crg.New(crg.Config{ClockName: "clk12", Freq: 12e6})
	if err != nil {
		t.Fatal(err)
	}
	if bits := c.Config().CounterBits; bits != crg.DefaultCounterBits {
		t.Errorf("CounterBits = %d, expected default %d", bits, crg.DefaultCounterBits)
	}
	pc := c.PeriodConstraint()
	if pc.Clock != "clk12" || math.Abs(pc.PeriodNS-1e9/12e6) > 1e-9 {
		t.Errorf("bad period constraint %v", pc)
	}
	if s := pc.String(); s != "clk12: 83.333 ns" {
		t.Errorf("PeriodConstraint.String() = %q", s)
	}
	if n := c.HoldCycles(); n != 65535 {
		t.Errorf("HoldCycles() = %d, expected 65535", n)
	}
	if d := c.HoldDuration(); d.Round(time.Microsecond) != 5461*time.Microsecond {
		t.Errorf("HoldDuration() = %v", d)
	}
}

func TestSim(t *testing.T) {
	for _, sync := range []crg.Synchronizer{crg.SyncBehavioral, crg.SyncDFFS} {
		t.Run(sync.String(), func(t *testing.T) {
			testSim(t, sync)
		})
	}
}

func testSim(t *testing.T, sync crg.Synchronizer) {
	const bits = 4
	c, err := crg.New(crg.Config{ClockName: "clk12", Freq: 12e6, CounterBits: bits, Synchronizer: sync})
	if err != nil {
		t.Fatal(err)
	}
	s, err := c.Simulate(1)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Dispose()

	hold := c.HoldCycles()
	release := c.ReleaseCycle()
	if release != hold+crg.SyncStages {
		t.Fatalf("ReleaseCycle() = %d, expected %d", release, hold+crg.SyncStages)
	}
	if !s.Reset() || s.State() != hwlib.Holding || s.Count() != hold {
		t.Fatal("bad power-up state")
	}
	for cycle := uint64(1); cycle <= release+20; cycle++ {
		s.Cycle()
		if s.Cycles() != cycle {
			t.Fatalf("Cycles() = %d, expected %d", s.Cycles(), cycle)
		}
		if exp := cycle >= hold; s.PORDone() != exp {
			t.Fatalf("cycle %d: por_done = %v, expected %v", cycle, s.PORDone(), exp)
		}
		var exp uint64
		if cycle < hold {
			exp = hold - cycle
		}
		if s.Count() != exp {
			t.Fatalf("cycle %d: por_count = %d, expected %d", cycle, s.Count(), exp)
		}
		if exp := cycle < release; s.Reset() != exp {
			t.Fatalf("cycle %d: sys_rst = %v, expected %v", cycle, s.Reset(), exp)
		}
		if s.PORDone() && s.State() != hwlib.Released {
			t.Fatalf("cycle %d: state = %v, expected RELEASED", cycle, s.State())
		}
	}
	if r, ok := s.Released(); !ok || r != release {
		t.Fatalf("Released() = %d, %v; expected %d", r, ok, release)
	}
}

func TestSynchronizer(t *testing.T) {
	for _, n := range []string{"behavioral", "dffs"} {
		s, err := crg.ParseSynchronizer(n)
		if err != nil || s.String() != n {
			t.Errorf("ParseSynchronizer(%q) = %v, %v", n, s, err)
		}
	}
	if _, err := crg.ParseSynchronizer("ff3"); err == nil {
		t.Error("expected error for unknown synchronizer")
	}
	if _, err := crg.New(crg.Config{ClockName: "clk12", Freq: 12e6, Synchronizer: 7}); err == nil {
		t.Error("expected error for invalid synchronizer")
	}
}

func TestSim_RunUntilReleased(t *testing.T) {
	c, err := crg.New(crg.Config{ClockName: "clk12", Freq: 12e6, CounterBits: 6})
	if err != nil {
		t.Fatal(err)
	}
	s, err := c.Simulate(1)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Dispose()

	if _, err = s.RunUntilReleased(10); err == nil {
		t.Fatal("expected error after 10 cycles")
	}
	r, err := s.RunUntilReleased(1000)
	if err != nil {
		t.Fatal(err)
	}
	if r != c.ReleaseCycle() {
		t.Fatalf("released at cycle %d, expected %d", r, c.ReleaseCycle())
	}
}

func TestSim_fullWidth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full 16 bits power-on count in short mode")
	}
	c, err := crg.New(crg.Config{ClockName: "clk12", Freq: 12e6, ValidatedFreqs: []float64{12e6}, RequireFreq: true})
	if err != nil {
		t.Fatal(err)
	}
	s, err := c.Simulate(1)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Dispose()

	r, err := s.RunUntilReleased(1 << 17)
	if err != nil {
		t.Fatal(err)
	}
	if r != 65535+crg.SyncStages {
		t.Fatalf("released at cycle %d, expected %d", r, 65535+crg.SyncStages)
	}
}
