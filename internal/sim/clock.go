package sim

// SecondsPerYear converts the solver's base unit to calendar time.
const SecondsPerYear = 3.15576e7 // Julian year

// Clock tracks elapsed simulation time. Sec is the base unit the
// solver steps in; years and kyr are derived for reporting.
type Clock struct {
	Sec   float64
	Steps int
}

func (c Clock) Years() float64 { return c.Sec / SecondsPerYear }
func (c Clock) Kyr() float64   { return c.Years() / 1000 }
