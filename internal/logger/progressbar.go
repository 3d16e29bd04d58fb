package logger

import (
	"fmt"
	"strings"
	"sync"
)

// ProgressBar renders questionnaire section completion as a fixed-width
// ASCII bar, for example "Sections [======    ] 3/5 (60%)".
type ProgressBar struct {
	mu          sync.Mutex
	done        int
	total       int
	width       int
	prefix      string
	enableColor bool
}

// NewProgressBar creates a bar for total steps rendered width characters
// wide. A width below 1 falls back to 10.
func NewProgressBar(total, width int, enableColor bool) *ProgressBar {
	if width < 1 {
		width = 10
	}
	return &ProgressBar{
		total:       total,
		width:       width,
		enableColor: enableColor,
	}
}

// SetPrefix sets a label rendered before the bar, such as "Sections".
func (pb *ProgressBar) SetPrefix(prefix string) {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	pb.prefix = prefix
}

// Update sets how many steps are complete.
func (pb *ProgressBar) Update(done int) {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	pb.done = done
}

// percent clamps completion to the 0-100 range. A zero total renders as 0%.
func (pb *ProgressBar) percent() int {
	if pb.total <= 0 {
		return 0
	}
	perc := (pb.done * 100) / pb.total
	if perc > 100 {
		return 100
	}
	if perc < 0 {
		return 0
	}
	return perc
}

// Render returns the bar as a single line. When color is enabled the line
// is cyan while sections remain and green once every section is answered.
func (pb *ProgressBar) Render() string {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	perc := pb.percent()
	filled := (perc * pb.width) / 100

	label := pb.prefix
	if label != "" {
		label += " "
	}
	bar := "[" + strings.Repeat("=", filled) + strings.Repeat(" ", pb.width-filled) + "]"
	line := fmt.Sprintf("%s%s %d/%d (%d%%)", label, bar, pb.done, pb.total, perc)

	if !pb.enableColor {
		return line
	}
	if perc == 100 {
		return "\033[32m" + line + "\033[0m"
	}
	return "\033[36m" + line + "\033[0m"
}
