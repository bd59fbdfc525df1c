package metallab

// Thermodynamic data for the Al-O deoxidation reaction in liquid iron:
//
//	(Al2O3) = 2[Al] + 3[O]
//	K = a_Al² · a_O³ / a_Al2O3
//
// Henrian activities use the 1 wt.% standard state, so log a_i = log f_i + log [%i].
// The constants below are literature regression fits and are reproduced as
// published. T is in Kelvin.

// LogKAl returns log10 of the equilibrium constant of Al2O3 dissociation.
func LogKAl(T float64) float64 {
	return -45300/T + 11.62
}

// First-order interaction coefficients e_i^j.

// EAlAl returns e_Al^Al, the effect of Al on f_Al.
func EAlAl(T float64) float64 { return 80.5 / T }

// EAlO returns e_Al^O, the effect of O on f_Al.
func EAlO(T float64) float64 { return 3.21 - 9720/T }

// EOAl returns e_O^Al, the effect of Al on f_O.
func EOAl(T float64) float64 { return 1.90 - 5750/T }

// EOO returns e_O^O.
func EOO(T float64) float64 { return 0.76 - 1750/T }

// Second-order interaction coefficients r_i^j and cross terms r_i^(j,k).

// RAlAl returns r_Al^Al. No data; zero at every temperature.
func RAlAl(T float64) float64 { return 0 }

// RAlO returns r_Al^O, the second-order effect of O on f_Al.
func RAlO(T float64) float64 { return -107 - 2.75e5/T }

// ROAl returns r_O^Al, the second-order effect of Al on f_O.
func ROAl(T float64) float64 { return 0.0033 - 25/T }

// ROO returns r_O^O. No data; zero at every temperature.
func ROO(T float64) float64 { return 0 }

// RAlAlO returns the cross term r_Al^(Al,O).
func RAlAlO(T float64) float64 { return -0.021 - 13.78/T }

// ROAlO returns the cross term r_O^(Al,O).
func ROAlO(T float64) float64 { return 127.3 + 3.273e5/T }

// TemperatureFunc is a coefficient expressed as a function of temperature.
type TemperatureFunc func(T float64) float64

// AlOSystem groups the temperature functions that define the Al-O equilibrium.
// Any field may be replaced to study a different data set.
type AlOSystem struct {
	LogK TemperatureFunc

	EAlAl TemperatureFunc
	EAlO  TemperatureFunc
	EOAl  TemperatureFunc
	EOO   TemperatureFunc

	RAlAl  TemperatureFunc
	RAlO   TemperatureFunc
	ROAl   TemperatureFunc
	ROO    TemperatureFunc
	RAlAlO TemperatureFunc
	ROAlO  TemperatureFunc
}

// LiteratureAlO returns the Al-O system with the published coefficients.
func LiteratureAlO() AlOSystem {
	return AlOSystem{
		LogK:   LogKAl,
		EAlAl:  EAlAl,
		EAlO:   EAlO,
		EOAl:   EOAl,
		EOO:    EOO,
		RAlAl:  RAlAl,
		RAlO:   RAlO,
		ROAl:   ROAl,
		ROO:    ROO,
		RAlAlO: RAlAlO,
		ROAlO:  ROAlO,
	}
}

// Coefficients is an AlOSystem evaluated at one temperature.
type Coefficients struct {
	Temperature float64
	LogK        float64

	EAlAl, EAlO, EOAl, EOO float64

	RAlAl, RAlO, ROAl, ROO float64
	RAlAlO, ROAlO          float64
}

// At evaluates every coefficient function at temperature T.
func (s AlOSystem) At(T float64) Coefficients {
	return Coefficients{
		Temperature: T,
		LogK:        s.LogK(T),
		EAlAl:       s.EAlAl(T),
		EAlO:        s.EAlO(T),
		EOAl:        s.EOAl(T),
		EOO:         s.EOO(T),
		RAlAl:       s.RAlAl(T),
		RAlO:        s.RAlO(T),
		ROAl:        s.ROAl(T),
		ROO:         s.ROO(T),
		RAlAlO:      s.RAlAlO(T),
		ROAlO:       s.ROAlO(T),
	}
}

// LogActivityCoefficients returns log10 f_Al and log10 f_O at the given
// composition using the requested number of interaction terms.
func (c Coefficients) LogActivityCoefficients(pctAl, pctO float64, order Order) (logFAl, logFO float64) {
	if order == OrderIdeal {
		return 0, 0
	}

	logFAl = c.EAlAl*pctAl + c.EAlO*pctO
	logFO = c.EOAl*pctAl + c.EOO*pctO

	if order == OrderSecond {
		logFAl += c.RAlAl*pctAl*pctAl + c.RAlO*pctO*pctO + c.RAlAlO*pctAl*pctO
		logFO += c.ROAl*pctAl*pctAl + c.ROO*pctO*pctO + c.ROAlO*pctAl*pctO
	}

	return logFAl, logFO
}
