package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/binzume/mocapretarget/clip"
	"github.com/binzume/mocapretarget/retarget"
	"github.com/binzume/mocapretarget/rig"
	"github.com/binzume/mocapretarget/skeleton"
)

func loadConfig(profile, configFile string, noCorrections bool) (*rig.Config, error) {
	var conf *rig.Config
	var err error
	if configFile != "" {
		conf, err = rig.LoadConfigFile(configFile)
	} else {
		conf, err = rig.Lookup(profile)
	}
	if err != nil {
		return nil, err
	}
	if noCorrections {
		conf.Corrections = map[string]*rig.Correction{}
	}
	return conf, nil
}

func parseJoints(list string) ([]skeleton.JointID, error) {
	if list == "" {
		return nil, nil
	}
	var joints []skeleton.JointID
	for _, name := range strings.Split(list, ",") {
		j, err := skeleton.ParseJointID(name)
		if err != nil {
			return nil, err
		}
		joints = append(joints, j)
	}
	return joints, nil
}

func retargetCapture(input, format string, solver *retarget.Solver, missing clip.MissingDataPolicy, workers int) (*clip.Clip, error) {
	snaps, err := loadCapture(input, format)
	if err != nil {
		return nil, err
	}
	log.Println("Capture frames:", len(snaps))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	seq := clip.NewSequencer(name, solver, missing)
	if err := seq.AddAll(ctx, snaps, workers); err != nil {
		return nil, err
	}
	log.Println("Frames:", len(seq.Clip().Frames), "skipped:", seq.Skipped(), "held:", seq.Held(), "degenerate:", seq.Degenerate())
	return seq.Clip(), nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] capture.json|clip.glb [output.glb|.vrm|.vmd|.bvh|.csv|.png|.json]\n", os.Args[0])
		flag.PrintDefaults()
	}
	profile := flag.String("profile", "kinect2", "rig profile: "+strings.Join(rig.Profiles(), ", "))
	configFile := flag.String("config", "", "rig config file (.yaml)")
	format := flag.String("format", "snapshot", "capture format: snapshot, kinect2, kinect1, nui")
	policy := flag.String("missing", "skip", "missing joint data: skip or hold")
	fps := flag.Float64("fps", 0, "resample rate. 0: keep capture times")
	workers := flag.Int("workers", 0, "solver goroutines. 0: number of CPUs")
	noCorrections := flag.Bool("nocorrection", false, "disable pitch corrections")
	modelName := flag.String("model", "", "model name (.vmd)")
	author := flag.String("author", "", "author (.vrm)")
	plotJoints := flag.String("joints", "", "comma separated joints to plot (.png)")
	dumpConfig := flag.Bool("dumpconfig", false, "print the rig config and exit")
	flag.Parse()

	conf, err := loadConfig(*profile, *configFile, *noCorrections)
	if err != nil {
		log.Fatal(err)
	}
	if *dumpConfig {
		data, err := conf.Marshal()
		if err != nil {
			log.Fatal(err)
		}
		os.Stdout.Write(data)
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		return
	}
	input := flag.Arg(0)
	output := defaultOutputFile(input)
	if flag.NArg() > 1 {
		output = flag.Arg(1)
	}

	missing, err := clip.ParsePolicy(*policy)
	if err != nil {
		log.Fatal(err)
	}
	joints, err := parseJoints(*plotJoints)
	if err != nil {
		log.Fatal(err)
	}

	structure, rest, err := rig.Build(conf)
	if err != nil {
		log.Fatal(err)
	}
	solver, err := retarget.NewSolver(structure, rest)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Rig:", structure.Name(), len(structure.Joints()), "joints")

	var c *clip.Clip
	if isGLTF(input) {
		if c, err = clip.LoadGLTF(input, structure, rest); err != nil {
			log.Fatal(err)
		}
	} else {
		c, err = retargetCapture(input, *format, solver, missing, *workers)
		if err != nil {
			log.Fatal(err)
		}
	}
	if len(c.Frames) == 0 {
		log.Fatal("no frames to write")
	}

	if *fps > 0 {
		if c, err = clip.Resample(c, *fps); err != nil {
			log.Fatal(err)
		}
	}

	if *modelName == "" {
		*modelName = structure.Name()
	}
	err = saveClip(c, output, &outputOptions{fps: *fps, modelName: *modelName, author: *author, joints: joints})
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Saved:", output)
}
