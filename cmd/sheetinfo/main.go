// sheetinfo prints an overview of a tracker workbook: shape, columns, dtypes, null counts,
// phases, date range and summary statistics.
package main

import (
	"flag"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitprogress/internal/logging"
	"github.com/2beens/fitprogress/internal/sheet"
)

func main() {
	file := flag.String("file", "Anshul_Progress_Tracker.xlsx", "path of the xlsx tracker file")
	sheetName := flag.String("sheet", "", "worksheet name, first sheet when empty")
	head := flag.Int("head", 5, "number of rows shown in the preview")
	logLevel := flag.String("log-level", "warn", "log level [trace | debug | info | warn | error]")
	flag.Parse()

	// the report owns stdout
	logging.Setup(logging.LoggerSetupParams{
		Component:   "sheetinfo",
		LogToStderr: true,
		LogLevel:    *logLevel,
	})

	if err := run(os.Stdout, *file, *sheetName, *head); err != nil {
		log.Fatalf("sheetinfo: %s", err)
	}
}

func run(w io.Writer, file, sheetName string, head int) error {
	frame, err := sheet.Open(file, sheetName)
	if err != nil {
		return err
	}

	opts := sheet.DefaultDescribeOptions()
	if head > 0 {
		opts.HeadRows = head
	}
	return sheet.Describe(w, frame, opts)
}
