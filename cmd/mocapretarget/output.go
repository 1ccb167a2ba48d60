package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/binzume/mocapretarget/clip"
	"github.com/binzume/mocapretarget/skeleton"
)

type outputOptions struct {
	fps       float64
	modelName string
	author    string
	joints    []skeleton.JointID
}

func isGLTF(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".glb" || ext == ".gltf" || ext == ".vrm"
}

func defaultOutputFile(input string) string {
	ext := filepath.Ext(input)
	if isGLTF(input) {
		return input[0:len(input)-len(ext)] + ".vmd"
	}
	return input[0:len(input)-len(ext)] + ".glb"
}

// savePoses writes the world pose of every frame as snapshots, the same format
// the snapshot reader accepts.
func savePoses(c *clip.Clip, output string) error {
	var snaps []*skeleton.Snapshot
	for _, f := range c.Frames {
		snaps = append(snaps, f.Pose.Snapshot().WithTime(f.Time))
	}
	data, err := json.MarshalIndent(snaps, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(output, data, 0644)
}

func saveClip(c *clip.Clip, output string, opts *outputOptions) error {
	ext := strings.ToLower(filepath.Ext(output))
	if ext == ".glb" || ext == ".vrm" {
		return clip.SaveGLB(c, output, &clip.GLTFOptions{Humanoid: ext == ".vrm", Author: opts.author})
	} else if ext == ".vmd" {
		return clip.SaveVMD(c, opts.modelName, output)
	} else if ext == ".bvh" {
		fps := opts.fps
		if fps <= 0 {
			fps = 30
		}
		return clip.SaveBVH(c, fps, output)
	} else if ext == ".csv" {
		return clip.SaveRotationCSV(c, output)
	} else if ext == ".png" || ext == ".svg" || ext == ".pdf" {
		return clip.SaveRestAnglePlot(c, opts.joints, output)
	} else if ext == ".json" {
		return savePoses(c, output)
	}
	return fmt.Errorf("Unsuppored output type: %v", ext)
}
