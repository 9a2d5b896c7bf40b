package hwtest_test

import (
	"testing"

	hw "github.com/db47h/socsim"
	hl "github.com/db47h/socsim/hwlib"
	"github.com/db47h/socsim/hwtest"
)

func TestComparePart(t *testing.T) {
	not, err := hw.Chip("custom_not", hw.In("in"), hw.Out("out"), hw.Parts{
		hl.Not("in=in, out=n0"),
		hl.Not("in=n0, out=n1"),
		hl.Not("in=n1, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, 16, hl.Not, not)
}

func TestComparePart_resetSync(t *testing.T) {
	rs, err := hw.Chip("ResetSync2FF", hw.In("in"), hw.Out("out"), hw.Parts{
		hl.DFFS("in=false, set=in, out=meta"),
		hl.DFFS("in=meta, set=in, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, 4, hl.ResetSync, rs)
}
