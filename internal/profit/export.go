package profit

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

const (
	csvFlushEvery = 200
	csvBufferSize = 32 * 1024
)

var csvHeader = []string{"Date", "Time", "Product", "Quantity", "Sales", "COGS", "Profit", "Margin"}

type csvStreamer struct {
	buf          *bufio.Writer
	csv          *csv.Writer
	flushEvery   int
	pendingLines int
}

func newCSVStreamer(w io.Writer) *csvStreamer {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)
	writer.UseCRLF = true
	return &csvStreamer{buf: buf, csv: writer, flushEvery: csvFlushEvery}
}

func (s *csvStreamer) writeRow(row []string) error {
	if s == nil || s.csv == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	if err := s.csv.Write(row); err != nil {
		return err
	}
	s.pendingLines++
	if s.flushEvery > 0 && s.pendingLines >= s.flushEvery {
		return s.flush()
	}
	return nil
}

func (s *csvStreamer) flush() error {
	s.csv.Flush()
	if err := s.csv.Error(); err != nil {
		return err
	}
	if err := s.buf.Flush(); err != nil {
		return err
	}
	s.pendingLines = 0
	return nil
}

// ExportFilename names the download after the day it was taken.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("profit_report_%s.csv", now.Format("2006-01-02"))
}

// WriteCSV streams the report as per-delivery rows. Grouped reports are
// flattened so the export always has the same shape.
func WriteCSV(w io.Writer, r Report) error {
	streamer := newCSVStreamer(w)
	if err := streamer.writeRow(csvHeader); err != nil {
		return err
	}
	for _, d := range r.Rows() {
		row := []string{
			d.Date,
			d.Time,
			d.ProductName,
			strconv.FormatInt(d.Quantity, 10),
			d.SellingPrice.StringFixed(2),
			d.CostOfGoodsSold.StringFixed(2),
			d.Profit.StringFixed(2),
			d.Margin.String() + "%",
		}
		if err := streamer.writeRow(row); err != nil {
			return err
		}
	}
	return streamer.flush()
}
