package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/binzume/mocapretarget/kinect"
	"github.com/binzume/mocapretarget/skeleton"
)

// decodeAll reads either a JSON array or a stream of JSON values.
func decodeAll[T any](r io.Reader) ([]T, error) {
	br := bufio.NewReader(r)
	for {
		b, err := br.Peek(1)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, err
		}
		if !strings.ContainsAny(string(b), " \t\r\n") {
			break
		}
		br.ReadByte()
	}

	dec := json.NewDecoder(br)
	b, _ := br.Peek(1)
	if b[0] == '[' {
		var values []T
		err := dec.Decode(&values)
		return values, err
	}
	var values []T
	for {
		var v T
		if err := dec.Decode(&v); err != nil {
			if errors.Is(err, io.EOF) {
				return values, nil
			}
			return nil, fmt.Errorf("value %d: %w", len(values), err)
		}
		values = append(values, v)
	}
}

func convertAll[T any](items []T, conv func(T) (*skeleton.Snapshot, error)) []*skeleton.Snapshot {
	var snaps []*skeleton.Snapshot
	for i, item := range items {
		snap, err := conv(item)
		if err != nil {
			log.Println("Skip capture frame:", i, err)
			continue
		}
		snaps = append(snaps, snap)
	}
	return snaps
}

func readCapture(r io.Reader, format string) ([]*skeleton.Snapshot, error) {
	switch format {
	case "snapshot":
		return decodeAll[*skeleton.Snapshot](r)
	case "kinect2":
		frames, err := decodeAll[*kinect.BodyFrame](r)
		if err != nil {
			return nil, err
		}
		return convertAll(frames, kinect.FromBodyFrameV2), nil
	case "kinect1":
		frames, err := decodeAll[*kinect.SkeletonFrame](r)
		if err != nil {
			return nil, err
		}
		return convertAll(frames, kinect.FromSkeletonFrameV1), nil
	case "nui":
		frames, err := decodeAll[*kinect.NUISkeleton](r)
		if err != nil {
			return nil, err
		}
		return convertAll(frames, func(s *kinect.NUISkeleton) (*skeleton.Snapshot, error) {
			return kinect.FromNUI(s), nil
		}), nil
	}
	return nil, fmt.Errorf("unknown capture format: %v", format)
}

// loadCapture reads a capture file and orders it by time. Snapshots that share
// a time with an earlier one are dropped.
func loadCapture(path, format string) ([]*skeleton.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	snaps, err := readCapture(f, format)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(snaps, func(i, j int) bool { return snaps[i].Time() < snaps[j].Time() })
	var out []*skeleton.Snapshot
	for _, s := range snaps {
		if len(out) > 0 && out[len(out)-1].Time() == s.Time() {
			log.Println("Duplicate capture time:", s.Time())
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
