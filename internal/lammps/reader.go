package lammps

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Data is the parsed form of a LAMMPS data file, used for round-trip
// verification of written structures.
type Data struct {
	Comment  string
	NAtoms   int
	NTypes   int
	Xlo, Xhi float64
	Ylo, Yhi float64
	Zlo, Zhi float64
	Masses   map[int]float64
	Atoms    []Atom
}

// Atom is one record of the Atoms section.
type Atom struct {
	ID   int
	Type int
	X    float64
	Y    float64
	Z    float64
}

// ReadData parses a LAMMPS data file in the subset of the format this
// package writes: orthogonal bounds, Masses and atomic-style Atoms
// sections.
func ReadData(r io.Reader) (*Data, error) {
	d := &Data{Masses: make(map[int]float64)}
	sc := bufio.NewScanner(r)

	section := ""
	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			d.Comment = strings.TrimSpace(strings.TrimPrefix(line, "#"))
			first = false
			continue
		}

		// Strip trailing comments, then skip blanks.
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "Masses", "Atoms", "Velocities":
			section = fields[0]
			continue
		}

		var err error
		switch section {
		case "":
			err = d.parseHeader(fields)
		case "Masses":
			err = d.parseMass(fields)
		case "Atoms":
			err = d.parseAtom(fields)
		default:
			err = fmt.Errorf("unsupported section %q", section)
		}
		if err != nil {
			return nil, fmt.Errorf("parsing data file: %w", err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading data file: %w", err)
	}

	if len(d.Atoms) != d.NAtoms {
		return nil, fmt.Errorf("data file declares %d atoms but lists %d", d.NAtoms, len(d.Atoms))
	}
	return d, nil
}

// ReadDataFile parses the LAMMPS data file at path.
func ReadDataFile(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening structure file: %w", err)
	}
	defer f.Close()
	return ReadData(f)
}

func (d *Data) parseHeader(fields []string) error {
	switch {
	case len(fields) == 2 && fields[1] == "atoms":
		return parseInt(fields[0], &d.NAtoms)
	case len(fields) == 3 && fields[1] == "atom" && fields[2] == "types":
		return parseInt(fields[0], &d.NTypes)
	case len(fields) == 4 && fields[2] == "xlo":
		return firstErr(parseFloat(fields[0], &d.Xlo), parseFloat(fields[1], &d.Xhi))
	case len(fields) == 4 && fields[2] == "ylo":
		return firstErr(parseFloat(fields[0], &d.Ylo), parseFloat(fields[1], &d.Yhi))
	case len(fields) == 4 && fields[2] == "zlo":
		return firstErr(parseFloat(fields[0], &d.Zlo), parseFloat(fields[1], &d.Zhi))
	case len(fields) == 6 && fields[3] == "xy":
		return nil // orthogonal cells: tilt factors ignored
	}
	return fmt.Errorf("unrecognized header line %q", strings.Join(fields, " "))
}

func (d *Data) parseMass(fields []string) error {
	if len(fields) != 2 {
		return fmt.Errorf("mass line has %d fields, want 2", len(fields))
	}
	var typ int
	var mass float64
	if err := firstErr(parseInt(fields[0], &typ), parseFloat(fields[1], &mass)); err != nil {
		return err
	}
	d.Masses[typ] = mass
	return nil
}

func (d *Data) parseAtom(fields []string) error {
	if len(fields) != 5 {
		return fmt.Errorf("atom line has %d fields, want 5", len(fields))
	}
	var a Atom
	err := firstErr(
		parseInt(fields[0], &a.ID),
		parseInt(fields[1], &a.Type),
		parseFloat(fields[2], &a.X),
		parseFloat(fields[3], &a.Y),
		parseFloat(fields[4], &a.Z),
	)
	if err != nil {
		return err
	}
	d.Atoms = append(d.Atoms, a)
	return nil
}

func parseInt(s string, dst *int) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func parseFloat(s string, dst *float64) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
