package rlog

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// CSVLogger is a DataLogger that appends comma-delimited rows to
// plain files, grounded on the teacher's CSVLogger (csv_logger.go):
// one growing file per record kind, written via a bytes.Buffer and
// AppendToFile rather than a streaming encoder.
type CSVLogger struct {
	nodePath  string
	cyclePath string
}

// NewCSVLogger constructs a CSVLogger rooted at basepath for the
// given instance index.
func NewCSVLogger(basepath string, instance int) *CSVLogger {
	l := new(CSVLogger)
	l.SetBasePath(basepath, instance)
	return l
}

func (l *CSVLogger) SetBasePath(basepath string, instance int) {
	if info, err := os.Stat(basepath); err == nil && info.IsDir() {
		basepath += fmt.Sprintf("log.%03d", instance)
	}
	trimmed := strings.TrimSuffix(basepath, ".")
	l.nodePath = trimmed + fmt.Sprintf(".%03d.nodes.csv", instance)
	l.cyclePath = trimmed + fmt.Sprintf(".%03d.cycles.csv", instance)
}

// Init is a no-op for CSVLogger: AppendToFile creates files lazily on
// first write.
func (l *CSVLogger) Init() error {
	return nil
}

func (l *CSVLogger) WriteNodes(rows []NodeRow) error {
	const template = "%d,%s,%g,%d,%d\n"
	var b bytes.Buffer
	for _, row := range rows {
		b.WriteString(fmt.Sprintf(template, row.NodeID, row.Lineage, row.Time, row.Population, row.Flags))
	}
	return AppendToFile(l.nodePath, b.Bytes())
}

func (l *CSVLogger) WriteCycle(c CycleRecord) error {
	const template = "%d,%d,%d,%d,%d,%s\n"
	row := fmt.Sprintf(template, c.Cycle, c.NodesBefore, c.NodesAfter, c.EdgesBefore, c.EdgesAfter, c.Duration)
	return AppendToFile(l.cyclePath, []byte(row))
}

func (l *CSVLogger) Close() error {
	return nil
}

// AppendToFile creates a new file at path if it does not exist, or
// appends to the end of the existing file, then fsyncs it.
func AppendToFile(path string, b []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(b); err != nil {
		return err
	}
	return f.Sync()
}
