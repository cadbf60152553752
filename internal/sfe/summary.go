package sfe

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// WriteCSV writes the full per-(composition, temperature) result table.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	header := []string{
		"composition", "temperature_K",
		"E_fcc_eV_atom", "E_hcp_eV_atom", "E_dhcp_eV_atom", "area_fcc_A2",
		"gamma_ISF_mJ_m2", "gamma_ESF_mJ_m2", "gamma_Twin_mJ_m2",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Composition,
			formatFloat(r.Temperature),
			formatFloat(r.EFCC),
			formatFloat(r.EHCP),
			formatFloat(r.EDHCP),
			formatFloat(r.AreaFCC),
			formatFloat(r.GammaISF),
			formatFloat(r.GammaESF),
			formatFloat(r.GammaTwin),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CompositionSummary aggregates a composition's SFE values over the
// sampled temperatures.
type CompositionSummary struct {
	Composition  string
	Temperatures int

	MeanISF, StdISF   float64
	MeanESF, StdESF   float64
	MeanTwin, StdTwin float64
}

// Summarize reduces results to one row per composition with mean and
// sample standard deviation across temperatures. Single-temperature
// compositions report zero spread.
func Summarize(results []Result) []CompositionSummary {
	byComp := make(map[string][]Result)
	for _, r := range results {
		byComp[r.Composition] = append(byComp[r.Composition], r)
	}

	summaries := make([]CompositionSummary, 0, len(byComp))
	for comp, rs := range byComp {
		isf := make([]float64, len(rs))
		esf := make([]float64, len(rs))
		twin := make([]float64, len(rs))
		for i, r := range rs {
			isf[i], esf[i], twin[i] = r.GammaISF, r.GammaESF, r.GammaTwin
		}

		s := CompositionSummary{Composition: comp, Temperatures: len(rs)}
		s.MeanISF = stat.Mean(isf, nil)
		s.MeanESF = stat.Mean(esf, nil)
		s.MeanTwin = stat.Mean(twin, nil)
		if len(rs) > 1 {
			s.StdISF = stat.StdDev(isf, nil)
			s.StdESF = stat.StdDev(esf, nil)
			s.StdTwin = stat.StdDev(twin, nil)
		}
		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Composition < summaries[j].Composition
	})
	return summaries
}

// WriteSummaryCSV writes the per-composition aggregate table.
func WriteSummaryCSV(w io.Writer, summaries []CompositionSummary) error {
	cw := csv.NewWriter(w)
	header := []string{
		"composition", "temperatures",
		"mean_ISF_mJ_m2", "std_ISF_mJ_m2",
		"mean_ESF_mJ_m2", "std_ESF_mJ_m2",
		"mean_Twin_mJ_m2", "std_Twin_mJ_m2",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range summaries {
		row := []string{
			s.Composition,
			strconv.Itoa(s.Temperatures),
			formatFloat(s.MeanISF), formatFloat(s.StdISF),
			formatFloat(s.MeanESF), formatFloat(s.StdESF),
			formatFloat(s.MeanTwin), formatFloat(s.StdTwin),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
