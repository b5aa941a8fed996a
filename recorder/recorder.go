package recorder

import (
	"fmt"
	"os"
	"sync"

	"github.com/gocarina/gocsv"

	"pipeheat/calculator"
)

// CSV 按时间步记录结果，Close 时写入文件
type CSV struct {
	mu   sync.Mutex
	path string
	rows []*calculator.Report
}

func NewCSV(path string) *CSV {
	return &CSV{path: path}
}

func (c *CSV) Record(r calculator.Report) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = append(c.rows, &r)
	return nil
}

func (c *CSV) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.rows)
}

func (c *CSV) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	file, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("create result file: %w", err)
	}
	defer file.Close()
	if err = gocsv.MarshalFile(&c.rows, file); err != nil {
		return fmt.Errorf("write result file %s: %w", c.path, err)
	}
	return nil
}

// Read 读取结果文件
func Read(path string) ([]*calculator.Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open result file: %w", err)
	}
	defer file.Close()

	var rows []*calculator.Report
	if err = gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("parse result file %s: %w", path, err)
	}
	return rows, nil
}
