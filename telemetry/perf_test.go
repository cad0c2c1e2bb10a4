package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorWindowRolls(t *testing.T) {
	p := NewPerfCollector(4)
	for i := 0; i < 10; i++ {
		p.StartTick()
		p.StartPhase(PhaseMotion)
		p.EndTick()
	}
	if got := len(p.TickDurations()); got != 4 {
		t.Fatalf("window holds %d samples, want 4", got)
	}
}

func TestPerfCollectorEmptyStats(t *testing.T) {
	p := NewPerfCollector(8)
	stats := p.Stats()
	if stats.AvgTickDuration != 0 || stats.TicksPerSecond != 0 {
		t.Fatalf("empty collector reported stats: %+v", stats)
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Fatal("empty stats should still carry phase maps")
	}
}

func TestPerfCollectorPhaseAccumulation(t *testing.T) {
	p := NewPerfCollector(8)
	p.StartTick()
	p.StartPhase(PhaseMotion)
	time.Sleep(2 * time.Millisecond)
	p.StartPhase(PhaseConnections)
	time.Sleep(2 * time.Millisecond)
	p.EndTick()

	stats := p.Stats()
	if stats.AvgTickDuration < 4*time.Millisecond {
		t.Fatalf("avg tick %v, want at least 4ms", stats.AvgTickDuration)
	}
	if stats.PhaseAvg[PhaseMotion] < time.Millisecond {
		t.Errorf("motion phase %v, want at least 1ms", stats.PhaseAvg[PhaseMotion])
	}
	if stats.PhaseAvg[PhaseConnections] < time.Millisecond {
		t.Errorf("connections phase %v, want at least 1ms", stats.PhaseAvg[PhaseConnections])
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Errorf("min %v exceeds max %v", stats.MinTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollectorRepeatedPhaseSumsUp(t *testing.T) {
	p := NewPerfCollector(8)
	p.StartTick()
	p.StartPhase(PhaseMotion)
	time.Sleep(time.Millisecond)
	p.StartPhase(PhaseRender)
	p.StartPhase(PhaseMotion)
	time.Sleep(time.Millisecond)
	p.EndTick()

	stats := p.Stats()
	if stats.PhaseAvg[PhaseMotion] < 2*time.Millisecond {
		t.Fatalf("re-entered phase %v, want combined 2ms", stats.PhaseAvg[PhaseMotion])
	}
}

func TestToCSVFlattensPhases(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 3 * time.Millisecond,
		TicksPerSecond:  333,
		PhasePct: map[string]float64{
			PhaseMotion:      60,
			PhaseConnections: 30,
		},
	}
	row := stats.ToCSV(120)
	if row.WindowEnd != 120 {
		t.Errorf("window end = %d", row.WindowEnd)
	}
	if row.AvgTickUS != 3000 {
		t.Errorf("avg tick us = %d, want 3000", row.AvgTickUS)
	}
	if row.MotionPct != 60 || row.ConnectionsPct != 30 || row.RenderPct != 0 {
		t.Errorf("phase percentages = %+v", row)
	}
}
