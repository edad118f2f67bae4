package tableau

import "sort"

// Named method tables. Coefficients are exact rationals evaluated in
// float64; each table is validated once at package init.
var (
	euler = must(New("euler",
		[][]float64{{}},
		[]float64{1},
		[]float64{0},
	))

	heun = must(New("heun",
		[][]float64{{}, {1}},
		[]float64{1.0 / 2.0, 1.0 / 2.0},
		[]float64{0, 1},
	))

	kutta3 = must(New("kutta3",
		[][]float64{{}, {1.0 / 2.0}, {-1, 2}},
		[]float64{1.0 / 6.0, 2.0 / 3.0, 1.0 / 6.0},
		[]float64{0, 1.0 / 2.0, 1},
	))

	rk4 = must(New("rk4",
		[][]float64{{}, {1.0 / 2.0}, {0, 1.0 / 2.0}, {0, 0, 1}},
		[]float64{1.0 / 6.0, 1.0 / 3.0, 1.0 / 3.0, 1.0 / 6.0},
		[]float64{0, 1.0 / 2.0, 1.0 / 2.0, 1},
	))

	// Fehlberg 4(5): B is the 5th-order estimate, B2 the 4th.
	fehlberg45 = must(NewEmbedded("fehlberg45",
		[][]float64{
			{},
			{1.0 / 4.0},
			{3.0 / 32.0, 9.0 / 32.0},
			{1932.0 / 2197.0, -7200.0 / 2197.0, 7296.0 / 2197.0},
			{439.0 / 216.0, -8, 3680.0 / 513.0, -845.0 / 4104.0},
			{-8.0 / 27.0, 2, -3544.0 / 2565.0, 1859.0 / 4104.0, -11.0 / 40.0},
		},
		[]float64{16.0 / 135.0, 0, 6656.0 / 12825.0, 28561.0 / 56430.0, -9.0 / 50.0, 2.0 / 55.0},
		[]float64{25.0 / 216.0, 0, 1408.0 / 2565.0, 2197.0 / 4104.0, -1.0 / 5.0, 0},
		[]float64{0, 1.0 / 4.0, 3.0 / 8.0, 12.0 / 13.0, 1, 1.0 / 2.0},
		4,
	))

	// Dormand-Prince 5(4): the FSAL pair; B is the 5th-order estimate.
	dopri5 = must(NewEmbedded("dopri5",
		[][]float64{
			{},
			{1.0 / 5.0},
			{3.0 / 40.0, 9.0 / 40.0},
			{44.0 / 45.0, -56.0 / 15.0, 32.0 / 9.0},
			{19372.0 / 6561.0, -25360.0 / 2187.0, 64448.0 / 6561.0, -212.0 / 729.0},
			{9017.0 / 3168.0, -355.0 / 33.0, 46732.0 / 5247.0, 49.0 / 176.0, -5103.0 / 18656.0},
			{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0},
		},
		[]float64{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0, 0},
		[]float64{5179.0 / 57600.0, 0, 7571.0 / 16695.0, 393.0 / 640.0, -92097.0 / 339200.0, 187.0 / 2100.0, 1.0 / 40.0},
		[]float64{0, 1.0 / 5.0, 3.0 / 10.0, 4.0 / 5.0, 8.0 / 9.0, 1, 1},
		4,
	))
)

func must(t Table, err error) Table {
	if err != nil {
		panic(err)
	}
	return t
}

// Euler returns the single-stage forward Euler table (order 1).
func Euler() Table { return euler }

// Heun returns Heun's two-stage method (order 2).
func Heun() Table { return heun }

// Kutta3 returns Kutta's third-order rule.
func Kutta3() Table { return kutta3 }

// RK4 returns the classic fourth-order Runge-Kutta table.
func RK4() Table { return rk4 }

// Fehlberg45 returns the Runge-Kutta-Fehlberg embedded 4(5) pair.
func Fehlberg45() Table { return fehlberg45 }

// DoPri5 returns the Dormand-Prince embedded 5(4) pair.
func DoPri5() Table { return dopri5 }

var registry = map[string]Table{
	euler.Name:      euler,
	heun.Name:       heun,
	kutta3.Name:     kutta3,
	rk4.Name:        rk4,
	fehlberg45.Name: fehlberg45,
	dopri5.Name:     dopri5,
}

// Lookup resolves a method name to its table.
func Lookup(name string) (Table, error) {
	t, ok := registry[name]
	if !ok {
		return Table{}, ErrUnknownMethod
	}
	return t, nil
}

// Names lists the registered method names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
