package hwlib_test

import (
	"testing"

	hw "github.com/db47h/socsim"
	hl "github.com/db47h/socsim/hwlib"
)

func TestDFFS(t *testing.T) {
	var in, set, out bool

	c, err := hw.NewCircuit(0, testTPC, hw.Parts{
		hl.Input(func() bool { return in })("out=dIn"),
		hl.Input(func() bool { return set })("out=dSet"),
		hl.DFFS("in=dIn, set=dSet, out=dOut"),
		hl.Output(func(b bool) { out = b })("in=dOut"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	// powers up set. Step 0 is a rising edge, so only the first step sees it.
	c.Step()
	if !out {
		t.Fatal("DFFS must power up set")
	}

	// clear on the next rising edge.
	c.TickTock()
	c.TickTock()
	if out {
		t.Fatal("DFFS not cleared by a rising edge with in = 0")
	}

	// asynchronous set: visible before the next rising edge.
	c.Tick()
	set = true
	c.Step()
	c.Step()
	c.Step()
	if !out {
		t.Fatal("DFFS set input must not wait for the clock")
	}
	c.Tock()
	set = false
	c.TickTock()
	c.TickTock()
	if out {
		t.Fatal("DFFS not cleared after set went low")
	}
}
