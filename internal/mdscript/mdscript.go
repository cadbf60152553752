// Package mdscript generates the MD-engine control files each
// composition directory needs: one LAMMPS input script per
// (variant, temperature), a matching batch job script, and a run_all
// driver. The core generator never runs these; they are emitted for the
// external engine and scheduler.
package mdscript

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/vk/sfegridgo/internal/hclcfg"
	"github.com/vk/sfegridgo/internal/lammps"
	"github.com/vk/sfegridgo/internal/lattice"
)

// inputParams feeds the LAMMPS input template.
type inputParams struct {
	Variant       lattice.Variant
	Temp          int
	StructureFile string
	OMPThreads    int
	EquilSteps    int
	ProdSteps     int
}

// inputTemplate is the three-stage LAMMPS run: CG minimization, NPT
// equilibration, NPT production with time-averaged PE and volume, ending
// with the results_summary.txt append line the SFE evaluator parses.
var inputTemplate = template.Must(template.New("input").Parse(`# LAMMPS input script
# Structure: {{.Variant}}, Temperature: {{.Temp}}K
{{if gt .OMPThreads 0}}
package         omp {{.OMPThreads}} neigh yes
suffix          omp
{{end}}
units           metal
atom_style      atomic
boundary        p p p

read_data       {{.StructureFile}}

pair_style      meam
pair_coeff      * * library.meam Al Fe Ni AlFeNi.meam Al Fe Ni

neighbor        3.0 bin
neigh_modify    every 2 delay 4 check yes one 4000

variable        natoms equal atoms
variable        area_xy equal lx*ly

thermo          500
thermo_style    custom step temp pe ke etotal press vol lx ly lz
thermo_modify   flush yes

log             log.{{.Variant}}.{{.Temp}}K.lammps

# STAGE 1: energy minimization
min_style       cg
min_modify      dmax 0.2
minimize        1.0e-6 1.0e-8 5000 50000

# STAGE 2: NPT equilibration
reset_timestep  0
velocity        all create {{.Temp}} 87654 dist gaussian
timestep        0.002
fix             npt1 all npt temp {{.Temp}} {{.Temp}} $(100*dt) iso 0.0 0.0 $(1000*dt)
run             {{.EquilSteps}}
unfix           npt1

# STAGE 3: NPT production
reset_timestep  0
timestep        0.001
fix             npt2 all npt temp {{.Temp}} {{.Temp}} $(100*dt) iso 0.0 0.0 $(1000*dt)

variable        pe_atom_step equal pe/v_natoms
variable        vol_step equal vol
variable        lx_step equal lx
variable        ly_step equal ly
variable        lz_step equal lz

fix             ave_pe all ave/time 50 100 5000 v_pe_atom_step &
                file pe_vs_time.{{.Variant}}.{{.Temp}}K.dat
fix             ave_vol all ave/time 50 100 5000 v_vol_step v_lx_step v_ly_step v_lz_step &
                file vol_vs_time.{{.Variant}}.{{.Temp}}K.dat

run             {{.ProdSteps}}

variable        pe_avg equal f_ave_pe
variable        lx_final equal lx
variable        ly_final equal ly
variable        lz_final equal lz
variable        vol_final equal vol
variable        area_final equal v_lx_final*v_ly_final

print           "{{.Variant}} {{.Temp}} ${natoms} ${pe_avg} ${vol_final} ${lx_final} ${ly_final} ${lz_final} ${area_final}" &
                append results_summary.txt

unfix           npt2
unfix           ave_pe
unfix           ave_vol
`))

// jobParams feeds the batch job template.
type jobParams struct {
	Variant    lattice.Variant
	Temp       int
	MPIRanks   int
	OMPThreads int
}

var jobTemplate = template.Must(template.New("job").Parse(`#!/bin/bash
#SBATCH --job-name={{.Variant}}_{{.Temp}}K
#SBATCH --output=job_{{.Variant}}_{{.Temp}}K.out
#SBATCH --ntasks={{.MPIRanks}}
#SBATCH --cpus-per-task={{.OMPThreads}}
#SBATCH --time=12:00:00

export OMP_NUM_THREADS={{.OMPThreads}}
export OMP_PROC_BIND=spread

mpirun -np {{.MPIRanks}} lmp -in in.{{.Variant}}_{{.Temp}}K.lammps

echo "Completed"
`))

// WriteInput writes the LAMMPS input script for one (variant, temperature).
func WriteInput(w io.Writer, v lattice.Variant, tempK int, sim hclcfg.Simulation) error {
	return inputTemplate.Execute(w, inputParams{
		Variant:       v,
		Temp:          tempK,
		StructureFile: lammps.StructureFileName(v),
		OMPThreads:    sim.OMPThreads,
		EquilSteps:    sim.EquilibrationSteps,
		ProdSteps:     sim.ProductionSteps,
	})
}

// WriteJob writes the batch job script for one (variant, temperature).
func WriteJob(w io.Writer, v lattice.Variant, tempK int, sim hclcfg.Simulation) error {
	return jobTemplate.Execute(w, jobParams{
		Variant:    v,
		Temp:       tempK,
		MPIRanks:   sim.MPIRanks,
		OMPThreads: sim.OMPThreads,
	})
}

// WriteRunAll writes the per-directory driver script that runs every
// (variant, temperature) job in sequence.
func WriteRunAll(w io.Writer, temps []int, sim hclcfg.Simulation) error {
	total := len(lattice.Variants) * len(temps)
	fmt.Fprintf(w, "#!/bin/bash\n# Run all simulations for this composition.\n\njob_num=0\n")
	for _, v := range lattice.Variants {
		for _, t := range temps {
			fmt.Fprintf(w, `
job_num=$((job_num + 1))
echo "[$job_num/%d] Running %s at %dK..."
OMP_NUM_THREADS=%d mpirun -np %d lmp -in in.%s_%dK.lammps > lammps_%s_%dK.log 2>&1
`, total, v, t, sim.OMPThreads, sim.MPIRanks, v, t, v, t)
		}
	}
	fmt.Fprintf(w, "\necho \"All simulations completed.\"\n")
	return nil
}

// Generate writes the full script set into one composition directory.
func Generate(dir string, sim hclcfg.Simulation) error {
	for _, v := range lattice.Variants {
		for _, t := range sim.Temperatures {
			inPath := filepath.Join(dir, fmt.Sprintf("in.%s_%dK.lammps", v, t))
			if err := writeFile(inPath, 0o644, func(w io.Writer) error {
				return WriteInput(w, v, t, sim)
			}); err != nil {
				return err
			}

			jobPath := filepath.Join(dir, fmt.Sprintf("job_%s_%dK.sh", v, t))
			if err := writeFile(jobPath, 0o755, func(w io.Writer) error {
				return WriteJob(w, v, t, sim)
			}); err != nil {
				return err
			}
		}
	}

	runAll := filepath.Join(dir, "run_all.sh")
	return writeFile(runAll, 0o755, func(w io.Writer) error {
		return WriteRunAll(w, sim.Temperatures, sim)
	})
}

// WriteMaster writes the top-level driver that visits every composition
// directory in order.
func WriteMaster(w io.Writer, compDirs []string) error {
	fmt.Fprintf(w, "#!/bin/bash\n# Run all compositions in sequence.\n\n")
	for i, d := range compDirs {
		fmt.Fprintf(w, "echo \"[%d/%d] Processing %s...\"\n(cd %q && ./run_all.sh)\n", i+1, len(compDirs), d, d)
	}
	fmt.Fprintf(w, "\necho \"All compositions completed.\"\n")
	return nil
}

// GenerateMaster writes the top-level run_all_compositions.sh under root.
func GenerateMaster(root string, compDirs []string) error {
	path := filepath.Join(root, "run_all_compositions.sh")
	return writeFile(path, 0o755, func(w io.Writer) error {
		return WriteMaster(w, compDirs)
	})
}

func writeFile(path string, perm os.FileMode, fill func(io.Writer) error) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("creating script %s: %w", path, err)
	}
	if err := fill(f); err != nil {
		f.Close()
		return fmt.Errorf("writing script %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing script %s: %w", path, err)
	}
	return nil
}
