/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/tetexport/tetgen"
)

type ConvertModel struct {
	MeshBase    string // TetGen output base name, e.g. "mesh.1" for mesh.1.node
	GmshFile    string
	SummaryFile string
	Strict      bool
	Check       bool
	Stats       bool
	Profile     string
}

// ConvertCmd represents the convert command
var ConvertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert TetGen output files into mesh arrays",
	Long: `
Loads <base>.node and <base>.ele (plus <base>.face and <base>.neigh when present),
converts them into validated mesh arrays and optionally writes a Gmsh 2.2 file
and a YAML summary.

tetexport convert -F mesh.1 -o mesh.msh -s summary.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cm := newConvertModel()
		if len(cm.MeshBase) == 0 {
			return fmt.Errorf("must supply a mesh base name (-F, --meshBase), e.g. mesh.1 for mesh.1.node")
		}
		switch cm.Profile {
		case "":
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
		default:
			return fmt.Errorf("unknown profile type %q, use cpu or mem", cm.Profile)
		}
		_, err := RunConvert(cm, cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(ConvertCmd)
	flags := ConvertCmd.Flags()
	flags.StringP("meshBase", "F", "", "TetGen output base name, reads <base>.node, <base>.ele, <base>.face, <base>.neigh")
	flags.StringP("output", "o", "", "write the mesh in Gmsh 2.2 ASCII format to this file")
	flags.StringP("summary", "s", "", "write a YAML summary of the mesh to this file")
	flags.Bool("strict", false, "report generator contract violations as errors instead of aborting")
	flags.Bool("check", false, "verify the neighbor list against shared tetrahedron faces")
	flags.Bool("stats", false, "print face connectivity statistics")
	flags.String("profile", "", "write a profile of the run: cpu or mem")
	for _, name := range []string{"meshBase", "output", "summary", "strict", "check", "stats", "profile"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// newConvertModel reads the convert settings, flags override the config file.
func newConvertModel() *ConvertModel {
	return &ConvertModel{
		MeshBase:    viper.GetString("meshBase"),
		GmshFile:    viper.GetString("output"),
		SummaryFile: viper.GetString("summary"),
		Strict:      viper.GetBool("strict"),
		Check:       viper.GetBool("check"),
		Stats:       viper.GetBool("stats"),
		Profile:     viper.GetString("profile"),
	}
}

// RunConvert loads, converts and writes one mesh, reporting progress to w.
func RunConvert(cm *ConvertModel, w io.Writer) (ma *tetgen.MeshArrays, err error) {
	log.Printf("Reading mesh from %s", cm.MeshBase)
	var raw *tetgen.RawMeshResult
	if raw, err = tetgen.ReadFiles(cm.MeshBase); err != nil {
		return nil, fmt.Errorf("failed to read mesh: %w", err)
	}
	if cm.Strict {
		ma, err = tetgen.ConvertStrict(raw)
	} else {
		ma, err = tetgen.Convert(raw)
	}
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "%d points, %d tetrahedra, %d boundary faces, %d regions\n",
		len(ma.Points), len(ma.Tetrahedra), len(ma.BoundaryFaces), ma.RegionCount)

	if cm.Check {
		if ma.NeighborList == nil {
			fmt.Fprintln(w, "no neighbor list, skipping check")
		} else if err = ma.CheckNeighbors(); err != nil {
			return nil, err
		} else {
			fmt.Fprintln(w, "neighbor list matches shared faces")
		}
	}
	if cm.Stats {
		ma.ToMesh().PrintStatistics(w)
	}
	if len(cm.GmshFile) != 0 {
		if err = writeTo(cm.GmshFile, ma.WriteGmsh22); err != nil {
			return nil, err
		}
		log.Printf("Wrote %s", cm.GmshFile)
	}
	if len(cm.SummaryFile) != 0 {
		var data []byte
		if data, err = ma.Summary().YAML(); err != nil {
			return nil, err
		}
		if err = os.WriteFile(cm.SummaryFile, data, 0644); err != nil {
			return nil, err
		}
		log.Printf("Wrote %s", cm.SummaryFile)
	}
	return ma, nil
}

func writeTo(filename string, write func(w io.Writer) error) (err error) {
	var file *os.File
	if file, err = os.Create(filename); err != nil {
		return
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return write(file)
}
