//go:build cgo

package native

import (
	"fmt"
	"path/filepath"

	gopsnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

// ProcessInspector resolves process names, trees, and listening ports
// through gopsutil.
type ProcessInspector struct{}

// NewProcessInspector returns the gopsutil-backed inspector.
func NewProcessInspector() *ProcessInspector {
	return &ProcessInspector{}
}

func (pi *ProcessInspector) ExecutableName(pid int) (string, error) {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return "", fmt.Errorf("process %d: %w", pid, err)
	}
	name, err := p.Name()
	if err != nil {
		exe, exeErr := p.Exe()
		if exeErr != nil {
			return "", fmt.Errorf("process %d name: %w", pid, err)
		}
		name = filepath.Base(exe)
	}
	return name, nil
}

func (pi *ProcessInspector) TreePIDs(pid int) ([]int, error) {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return nil, fmt.Errorf("process %d: %w", pid, err)
	}
	pids := []int{pid}
	var walk func(p *process.Process)
	walk = func(p *process.Process) {
		children, err := p.Children()
		if err != nil {
			return
		}
		for _, child := range children {
			pids = append(pids, int(child.Pid))
			walk(child)
		}
	}
	walk(p)
	return pids, nil
}

func (pi *ProcessInspector) ListeningPorts(pids []int) ([]int, error) {
	conns, err := gopsnet.Connections("tcp")
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	inTree := make(map[int32]bool, len(pids))
	for _, pid := range pids {
		inTree[int32(pid)] = true
	}
	var ports []int
	for _, c := range conns {
		if c.Status == "LISTEN" && inTree[c.Pid] {
			ports = append(ports, int(c.Laddr.Port))
		}
	}
	return ports, nil
}
