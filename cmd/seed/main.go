package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"time"

	"shelfthis/internal/logger"
)

// header matches the columns of a StoryGraph style export.
var header = []string{
	"Title", "Authors", "Contributors", "ISBN/UID", "Format", "Read Status",
	"Date Added", "Last Date Read", "Dates Read", "Read Count", "Star Rating",
}

func main() {
	var (
		out   = flag.String("out", "books.csv", "Where to write the generated export")
		count = flag.Int("count", 300, "Number of rows")
		seed  = flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	)
	flag.Parse()

	log := logger.Init(slog.LevelInfo, "text")

	f, err := os.Create(*out)
	if err != nil {
		log.Error("failed to create export", "path", *out, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	rng := rand.New(rand.NewSource(*seed))
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		log.Error("failed to write header", "error", err)
		os.Exit(1)
	}
	for i := 0; i < *count; i++ {
		if err := w.Write(row(rng, i)); err != nil {
			log.Error("failed to write row", "row", i, "error", err)
			os.Exit(1)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Error("failed to flush export", "error", err)
		os.Exit(1)
	}
	log.Info("export generated", "path", *out, "rows", *count)
}

var (
	formats  = []string{"Physical", "Audio", "Digital"}
	statuses = []string{"read", "read", "read", "to-read", "currently-reading"}
	words    = []string{"Shadow", "River", "Glass", "Winter", "Orchard", "Lantern", "Harbor", "Ember", "Atlas", "Meridian"}
)

func row(rng *rand.Rand, i int) []string {
	title := fmt.Sprintf("The %s of %s", words[rng.Intn(len(words))], words[rng.Intn(len(words))])
	author := fmt.Sprintf("Author %d", 1+rng.Intn(60))
	status := statuses[rng.Intn(len(statuses))]

	added := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, rng.Intn(5*365))
	isbn := ""
	// a few rows have no identifier, like real exports
	if rng.Intn(10) > 0 {
		isbn = fmt.Sprintf("978%010d", rng.Int63n(1e10))
	}

	var lastRead, datesRead, readCount, rating string
	if status == "read" {
		start := added.AddDate(0, 0, rng.Intn(60))
		end := start.AddDate(0, 0, 3+rng.Intn(40))
		lastRead = end.Format("2006/01/02")
		datesRead = start.Format("2006/01/02") + "-" + lastRead
		readCount = "1"
		if rng.Intn(8) > 0 {
			rating = strconv.FormatFloat(float64(2+rng.Intn(13))*0.25+1, 'f', -1, 64)
		}
	} else {
		readCount = "0"
	}

	return []string{
		title, author, "", isbn, formats[rng.Intn(len(formats))], status,
		added.Format("2006/01/02"), lastRead, datesRead, readCount, rating,
	}
}
