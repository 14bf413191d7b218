// Copyright 2026 The Edakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"math"
	"math/rand"

	"github.com/aclements/go-gg/table"
)

// Generator seeds. Changing a seed changes the dataset, which breaks
// golden values in tests, so treat these as fixed.
const (
	seedDiamonds = 0x1d1a
	seedMPG      = 0x3a67
	seedPenguins = 0x9e46
	seedFlights  = 0xf1a9
	seedFaithful = 0x0f27
)

// genDiamonds generates ~5000 round-cut diamonds. Carat mass
// concentrates just above "magic" sizes (0.3, 0.5, 0.7, 1, 1.5, 2),
// which is what makes the carat histogram lesson interesting. Price
// grows roughly as a power of carat with grade-dependent multipliers.
// A few rows carry data-entry errors in y (0 or wildly large), matching
// the outlier-hunting exercise.
func genDiamonds() *table.Table {
	const n = 5000
	rng := rand.New(rand.NewSource(seedDiamonds))

	anchors := []float64{0.23, 0.3, 0.4, 0.5, 0.7, 0.9, 1.0, 1.2, 1.5, 2.0}
	weights := []float64{8, 14, 12, 13, 14, 6, 12, 7, 8, 6}
	cuts := []string{"Fair", "Good", "Very Good", "Premium", "Ideal"}
	cutW := []float64{3, 9, 22, 25, 41}
	colors := []string{"D", "E", "F", "G", "H", "I", "J"}
	colorW := []float64{13, 18, 17, 21, 15, 10, 6}
	clarities := []string{"I1", "SI2", "SI1", "VS2", "VS1", "VVS2", "VVS1", "IF"}
	clarityW := []float64{1, 17, 24, 23, 15, 9, 7, 4}

	carat := make([]float64, n)
	cut := make([]string, n)
	color := make([]string, n)
	clarity := make([]string, n)
	depth := make([]float64, n)
	tableCol := make([]float64, n)
	price := make([]int, n)
	xs := make([]float64, n)
	ys := make([]float64, n)
	zs := make([]float64, n)

	for i := 0; i < n; i++ {
		// Stones are cut to land at or just above an anchor
		// weight, so the noise is one-sided.
		c := anchors[weighted(rng, weights)] + rng.ExpFloat64()*0.035
		carat[i] = math.Round(c*100) / 100
		cut[i] = cuts[weighted(rng, cutW)]
		color[i] = colors[weighted(rng, colorW)]
		clarity[i] = clarities[weighted(rng, clarityW)]
		depth[i] = round1(61.8 + rng.NormFloat64()*1.4)
		tableCol[i] = round1(57.5 + rng.NormFloat64()*2.2)

		grade := 0.9 + 0.05*float64(indexOf(cuts, cut[i])) +
			0.04*float64(len(colors)-1-indexOf(colors, color[i])) +
			0.05*float64(indexOf(clarities, clarity[i]))
		p := math.Exp(8.2+1.68*math.Log(carat[i])) * grade * math.Exp(rng.NormFloat64()*0.18)
		if p < 326 {
			p = 326 + rng.Float64()*40
		}
		price[i] = int(p)

		// Physical dimensions follow from weight.
		d := math.Cbrt(carat[i]/0.0037) / 10
		xs[i] = round2(d * (1 + rng.NormFloat64()*0.01) * 10)
		ys[i] = round2(d * (1 + rng.NormFloat64()*0.01) * 10)
		zs[i] = round2(d * 0.62 * (1 + rng.NormFloat64()*0.015) * 10)
	}

	// Data-entry errors: dimension dropped to zero or shifted a
	// decimal place. These are the rows the filtering exercise finds.
	ys[912], ys[2744] = 0, 0
	ys[4039] = 58.9
	zs[1577] = 0

	return new(table.Builder).
		Add("carat", carat).
		Add("cut", cut).
		Add("color", color).
		Add("clarity", clarity).
		Add("depth", depth).
		Add("table", tableCol).
		Add("price", price).
		Add("x", xs).
		Add("y", ys).
		Add("z", zs).
		Done()
}

type mpgModel struct {
	manufacturer, model, class, drv, fl string
	cyl                                 int
	displ                               float64
}

// genMPG generates 234 car records across two model years. Highway
// economy falls off with displacement; two-seaters sit above the trend,
// which is the outlier discussion in the scatterplot chapter.
func genMPG() *table.Table {
	rng := rand.New(rand.NewSource(seedMPG))

	models := []mpgModel{
		{"audi", "a4", "compact", "f", "p", 4, 2.0},
		{"audi", "a4 quattro", "compact", "4", "p", 6, 2.8},
		{"chevrolet", "corvette", "2seater", "r", "p", 8, 5.7},
		{"chevrolet", "malibu", "midsize", "f", "r", 6, 3.1},
		{"dodge", "caravan 2wd", "minivan", "f", "r", 6, 3.3},
		{"dodge", "ram 1500 pickup 4wd", "pickup", "4", "r", 8, 5.2},
		{"ford", "explorer 4wd", "suv", "4", "r", 6, 4.0},
		{"ford", "mustang", "subcompact", "r", "r", 8, 4.6},
		{"honda", "civic", "subcompact", "f", "r", 4, 1.6},
		{"hyundai", "sonata", "midsize", "f", "r", 4, 2.4},
		{"jeep", "grand cherokee 4wd", "suv", "4", "r", 6, 4.0},
		{"nissan", "altima", "midsize", "f", "r", 4, 2.4},
		{"subaru", "forester awd", "suv", "4", "r", 4, 2.5},
		{"toyota", "camry", "midsize", "f", "r", 4, 2.2},
		{"toyota", "corolla", "compact", "f", "r", 4, 1.8},
		{"toyota", "land cruiser wagon 4wd", "suv", "4", "r", 8, 4.7},
		{"volkswagen", "jetta", "compact", "f", "r", 4, 2.0},
		{"volkswagen", "new beetle", "subcompact", "f", "r", 4, 1.9},
	}
	years := []int{1999, 2008}
	transByDrv := map[string][]string{
		"f": {"auto(l4)", "manual(m5)", "auto(av)"},
		"r": {"auto(l4)", "manual(m6)"},
		"4": {"auto(l5)", "manual(m5)", "auto(s6)"},
	}

	const n = 234
	manufacturer := make([]string, n)
	model := make([]string, n)
	displ := make([]float64, n)
	year := make([]int, n)
	cyl := make([]int, n)
	trans := make([]string, n)
	drv := make([]string, n)
	cty := make([]int, n)
	hwy := make([]int, n)
	fl := make([]string, n)
	class := make([]string, n)

	for i := 0; i < n; i++ {
		m := models[i%len(models)]
		y := years[(i/len(models))%len(years)]
		// Trim levels vary displacement a little within a model.
		d := m.displ + float64(rng.Intn(3))*0.2
		manufacturer[i] = m.manufacturer
		model[i] = m.model
		displ[i] = round1(d)
		year[i] = y
		cyl[i] = m.cyl
		ts := transByDrv[m.drv]
		trans[i] = ts[rng.Intn(len(ts))]
		drv[i] = m.drv
		fl[i] = m.fl
		class[i] = m.class

		h := 42.5 - 6.8*d + rng.NormFloat64()*1.7
		if m.class == "2seater" {
			// Light sports cars beat the displacement trend.
			h += 8
		}
		if y == 2008 {
			h += 1
		}
		if h < 12 {
			h = 12
		}
		hwy[i] = int(h)
		cty[i] = int(h*0.72 + rng.NormFloat64()*0.8)
	}

	return new(table.Builder).
		Add("manufacturer", manufacturer).
		Add("model", model).
		Add("displ", displ).
		Add("year", year).
		Add("cyl", cyl).
		Add("trans", trans).
		Add("drv", drv).
		Add("cty", cty).
		Add("hwy", hwy).
		Add("fl", fl).
		Add("class", class).
		Done()
}

// genPenguins generates 344 penguins across three species. Eleven rows
// have NaN body measurements so the missing-value warning path in vis
// has something to warn about.
func genPenguins() *table.Table {
	rng := rand.New(rand.NewSource(seedPenguins))

	type species struct {
		name                              string
		count                             int
		islands                           []string
		billLen, billDep, flipper, mass   float64
		billLenSD, billDepSD, flipSD, mSD float64
	}
	specs := []species{
		{"Adelie", 152, []string{"Torgersen", "Biscoe", "Dream"}, 38.8, 18.3, 190, 3700, 2.7, 1.2, 6.5, 460},
		{"Chinstrap", 68, []string{"Dream"}, 48.8, 18.4, 196, 3730, 3.3, 1.1, 7.1, 384},
		{"Gentoo", 124, []string{"Biscoe"}, 47.5, 15.0, 217, 5076, 3.1, 1.0, 6.6, 504},
	}

	var (
		specCol    []string
		islandCol  []string
		billLen    []float64
		billDep    []float64
		flipperLen []float64
		bodyMass   []float64
		sexCol     []string
	)
	for _, sp := range specs {
		for i := 0; i < sp.count; i++ {
			sex := "female"
			dimorph := -1.0
			if rng.Intn(2) == 0 {
				sex, dimorph = "male", 1.0
			}
			specCol = append(specCol, sp.name)
			islandCol = append(islandCol, sp.islands[rng.Intn(len(sp.islands))])
			billLen = append(billLen, round1(sp.billLen+dimorph*1.4+rng.NormFloat64()*sp.billLenSD))
			billDep = append(billDep, round1(sp.billDep+dimorph*0.7+rng.NormFloat64()*sp.billDepSD))
			flipperLen = append(flipperLen, math.Round(sp.flipper+dimorph*4+rng.NormFloat64()*sp.flipSD))
			bodyMass = append(bodyMass, math.Round((sp.mass+dimorph*350+rng.NormFloat64()*sp.mSD)/25)*25)
			sexCol = append(sexCol, sex)
		}
	}

	// Field notebooks have gaps.
	nan := math.NaN()
	for _, i := range []int{3, 39, 47, 104, 170, 215, 246, 271, 303, 318, 338} {
		billLen[i], billDep[i], flipperLen[i], bodyMass[i] = nan, nan, nan, nan
		sexCol[i] = ""
	}

	return new(table.Builder).
		Add("species", specCol).
		Add("island", islandCol).
		Add("bill_len", billLen).
		Add("bill_dep", billDep).
		Add("flipper_len", flipperLen).
		Add("body_mass", bodyMass).
		Add("sex", sexCol).
		Done()
}

// genFlights generates 10000 departures from the three NYC airports.
// Departure delay is a mixture: most flights leave a few minutes early
// or on time, with a long exponential late tail that worsens in summer
// and in the evening.
func genFlights() *table.Table {
	const n = 10000
	rng := rand.New(rand.NewSource(seedFlights))

	carriers := []string{"UA", "B6", "EV", "DL", "AA", "MQ", "US", "9E", "WN", "VX"}
	carrierW := []float64{17, 16, 16, 14, 10, 8, 6, 5, 4, 2}
	origins := []string{"EWR", "JFK", "LGA"}
	dests := []struct {
		code string
		dist float64
	}{
		{"ORD", 740}, {"ATL", 762}, {"LAX", 2475}, {"BOS", 187},
		{"MCO", 944}, {"CLT", 544}, {"SFO", 2565}, {"FLL", 1065},
		{"MIA", 1089}, {"DCA", 214}, {"DTW", 502}, {"DFW", 1389},
		{"RDU", 416}, {"TPA", 1005}, {"DEN", 1626}, {"IAD", 228},
		{"MSP", 1020}, {"SEA", 2422}, {"PHX", 2153}, {"SJU", 1598},
	}

	year := make([]int, n)
	month := make([]int, n)
	day := make([]int, n)
	hour := make([]int, n)
	depDelay := make([]float64, n)
	arrDelay := make([]float64, n)
	carrier := make([]string, n)
	origin := make([]string, n)
	dest := make([]string, n)
	distance := make([]float64, n)
	airTime := make([]float64, n)

	for i := 0; i < n; i++ {
		year[i] = 2013
		month[i] = 1 + rng.Intn(12)
		day[i] = 1 + rng.Intn(28)
		hour[i] = 5 + rng.Intn(18)
		carrier[i] = carriers[weighted(rng, carrierW)]
		origin[i] = origins[rng.Intn(len(origins))]
		d := dests[rng.Intn(len(dests))]
		dest[i] = d.code
		distance[i] = d.dist
		airTime[i] = math.Round(d.dist/7.6 + 18 + rng.NormFloat64()*6)

		base := rng.NormFloat64()*4 - 2
		tail := 0.0
		pLate := 0.18 + 0.012*float64(hour[i]-5)
		if month[i] >= 6 && month[i] <= 8 {
			pLate += 0.05
		}
		if rng.Float64() < pLate {
			tail = rng.ExpFloat64() * 38
		}
		depDelay[i] = math.Round(base + tail)
		arrDelay[i] = math.Round(depDelay[i] + rng.NormFloat64()*12 - 4)
	}

	return new(table.Builder).
		Add("year", year).
		Add("month", month).
		Add("day", day).
		Add("hour", hour).
		Add("dep_delay", depDelay).
		Add("arr_delay", arrDelay).
		Add("carrier", carrier).
		Add("origin", origin).
		Add("dest", dest).
		Add("distance", distance).
		Add("air_time", airTime).
		Done()
}

// genFaithful generates 272 Old Faithful eruptions. Eruption length is
// bimodal and waiting time tracks the previous eruption's length.
func genFaithful() *table.Table {
	const n = 272
	rng := rand.New(rand.NewSource(seedFaithful))

	eruptions := make([]float64, n)
	waiting := make([]float64, n)
	for i := 0; i < n; i++ {
		var e float64
		if rng.Float64() < 0.35 {
			e = 2.03 + rng.NormFloat64()*0.26
		} else {
			e = 4.35 + rng.NormFloat64()*0.40
		}
		eruptions[i] = math.Round(e*1000) / 1000
		waiting[i] = math.Round(33 + 10.7*e + rng.NormFloat64()*5.8)
	}

	return new(table.Builder).
		Add("eruptions", eruptions).
		Add("waiting", waiting).
		Done()
}

// weighted returns an index into w chosen with probability proportional
// to the weights.
func weighted(rng *rand.Rand, w []float64) int {
	var sum float64
	for _, x := range w {
		sum += x
	}
	r := rng.Float64() * sum
	for i, x := range w {
		r -= x
		if r < 0 {
			return i
		}
	}
	return len(w) - 1
}

func indexOf(xs []string, x string) int {
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return -1
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }
func round2(x float64) float64 { return math.Round(x*100) / 100 }
