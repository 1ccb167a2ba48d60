package clip

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/binzume/mocapretarget/retarget"
	"github.com/binzume/mocapretarget/skeleton"
)

// MissingDataPolicy decides what happens to a snapshot the solver rejects for
// missing joint data.
type MissingDataPolicy int

const (
	// SkipFrame drops the frame.
	SkipFrame MissingDataPolicy = iota
	// HoldPrevious repeats the previous pose at the new time.
	HoldPrevious
)

var ErrOutOfOrder = errors.New("snapshot is not after the previous frame")

func (p MissingDataPolicy) String() string {
	switch p {
	case SkipFrame:
		return "skip"
	case HoldPrevious:
		return "hold"
	}
	return fmt.Sprintf("MissingDataPolicy(%d)", int(p))
}

func ParsePolicy(s string) (MissingDataPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "skip", "":
		return SkipFrame, nil
	case "hold":
		return HoldPrevious, nil
	}
	return SkipFrame, fmt.Errorf("unknown missing data policy: %q", s)
}

// Sequencer retargets snapshots in time order and collects the poses into a clip.
type Sequencer struct {
	solver *retarget.Solver
	policy MissingDataPolicy
	clip   *Clip

	// time of the latest accepted snapshot, kept or not
	lastTime time.Duration
	started  bool

	skipped    int
	held       int
	degenerate int
}

func NewSequencer(name string, solver *retarget.Solver, policy MissingDataPolicy) *Sequencer {
	return &Sequencer{
		solver: solver,
		policy: policy,
		clip:   &Clip{Name: name, Structure: solver.Structure(), Rest: solver.Rest()},
	}
}

// Add solves snap and appends the result. Snapshots must arrive with strictly
// increasing times, including the ones dropped for missing data. Missing joint data is handled by the policy; other solver
// errors are returned.
func (s *Sequencer) Add(snap *skeleton.Snapshot) error {
	if err := s.checkTime(snap.Time()); err != nil {
		return err
	}
	s.seen(snap.Time())
	res, err := s.solver.Solve(snap)
	return s.add(snap.Time(), res, err)
}

// AddAll solves snaps on workers goroutines and appends the results in order.
func (s *Sequencer) AddAll(ctx context.Context, snaps []*skeleton.Snapshot, workers int) error {
	for i, snap := range snaps {
		if i > 0 && snap.Time() <= snaps[i-1].Time() {
			return fmt.Errorf("%w: %v after %v", ErrOutOfOrder, snap.Time(), snaps[i-1].Time())
		}
	}
	if len(snaps) > 0 {
		if err := s.checkTime(snaps[0].Time()); err != nil {
			return err
		}
		s.seen(snaps[len(snaps)-1].Time())
	}
	results, err := RetargetAll(ctx, s.solver, snaps, workers)
	if err != nil {
		return err
	}
	for i, r := range results {
		if err := s.add(snaps[i].Time(), r.Result, r.Err); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sequencer) last() *Frame {
	if len(s.clip.Frames) == 0 {
		return nil
	}
	return s.clip.Frames[len(s.clip.Frames)-1]
}

func (s *Sequencer) checkTime(t time.Duration) error {
	if s.started && t <= s.lastTime {
		return fmt.Errorf("%w: %v after %v", ErrOutOfOrder, t, s.lastTime)
	}
	return nil
}

func (s *Sequencer) seen(t time.Duration) {
	s.lastTime = t
	s.started = true
}

func (s *Sequencer) add(t time.Duration, res *retarget.Result, err error) error {
	if err != nil {
		if !errors.Is(err, retarget.ErrMissingJointData) {
			return err
		}
		if last := s.last(); s.policy == HoldPrevious && last != nil {
			log.Println("Hold previous pose:", t, err)
			s.held++
			s.clip.Frames = append(s.clip.Frames, &Frame{Time: t, Pose: last.Pose, Held: true})
			return nil
		}
		log.Println("Skip frame:", t, err)
		s.skipped++
		return nil
	}
	if len(res.Degenerate) > 0 {
		log.Println("Degenerate joints:", t, res.Degenerate)
		s.degenerate++
	}
	s.clip.Frames = append(s.clip.Frames, &Frame{Time: t, Pose: res.Pose})
	return nil
}

// Clip returns the collected clip. The sequencer keeps appending to it.
func (s *Sequencer) Clip() *Clip {
	return s.clip
}

// Skipped returns the number of dropped snapshots.
func (s *Sequencer) Skipped() int {
	return s.skipped
}

// Held returns the number of frames that repeat the previous pose.
func (s *Sequencer) Held() int {
	return s.held
}

// Degenerate returns the number of frames with at least one degenerate joint.
func (s *Sequencer) Degenerate() int {
	return s.degenerate
}
