package cmd

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gosuri/uiprogress"
	"github.com/oledtools/monopack/bank"
	"github.com/oledtools/monopack/codec"
	"github.com/oledtools/monopack/encoding"
	"github.com/spf13/cobra"
)

var bankName string
var description string
var numWorkers int

var bundleCmd = &cobra.Command{
	Use:   "bundle [IN_DIR] [OUT.db]",
	Short: "Pack every PNG in a directory into a sqlite bitmap bank",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 2 {
			return errors.New("input directory and bank filenames are required")
		}
		info, err := os.Stat(args[0])
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("input directory '%s' does not exist", args[0])
		}
		if err == nil && !info.IsDir() {
			return fmt.Errorf("'%s' is not a directory", args[0])
		}
		outDir, _ := path.Split(args[1])
		if outDir != "" {
			if _, err := os.Stat(outDir); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("output directory '%s' does not exist", outDir)
			}
		}
		if path.Ext(args[1]) != ".db" {
			return errors.New("bank filename must end in '.db'")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if numWorkers < 1 {
			numWorkers = 1
		}
		return bundle(args[0], args[1])
	},
	SilenceUsage: true,
}

func init() {
	bundleCmd.Flags().IntVarP(&numWorkers, "workers", "w", 4, "number of workers to encode bitmaps")
	bundleCmd.Flags().StringVarP(&bankName, "name", "n", "", "bank name")
	bundleCmd.Flags().StringVar(&description, "description", "", "bank description")
}

func produce(filenames []string, queue chan<- string, bar *uiprogress.Bar) {
	defer close(queue)

	for _, filename := range filenames {
		queue <- filename
		bar.Incr()
	}
}

func bundle(indirname string, outfilename string) error {
	// set defaults
	if bankName == "" {
		bankName = strings.TrimSuffix(path.Base(outfilename), filepath.Ext(outfilename))
	}

	filenames, err := filepath.Glob(filepath.Join(indirname, "*.png"))
	if err != nil {
		return err
	}
	if len(filenames) == 0 {
		return fmt.Errorf("no PNG files found in '%s'", indirname)
	}

	db, err := bank.NewWriter(outfilename, numWorkers)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.WriteMetadata(bankName, description); err != nil {
		return err
	}

	fmt.Printf("Packing %v bitmaps\n", len(filenames))

	uiprogress.Start()
	bar := uiprogress.AddBar(len(filenames)).AppendCompleted().PrependElapsed()

	queue := make(chan string)
	var wg sync.WaitGroup
	// every file plus a possible connection failure per worker
	errs := make(chan error, len(filenames)+numWorkers)

	go produce(filenames, queue, bar)

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			con, err := db.GetConnection()
			if err != nil {
				errs <- err
				return
			}
			defer db.CloseConnection(con)

			for filename := range queue {
				grid, err := encoding.ReadPNG(filename)
				if err != nil {
					errs <- fmt.Errorf("%s: %w", filename, err)
					continue
				}
				data, err := codec.Pack(grid)
				if err != nil {
					errs <- fmt.Errorf("%s: %w", filename, err)
					continue
				}

				name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
				if err := bank.WriteBitmap(con, name, len(grid[0]), len(grid), data); err != nil {
					errs <- err
				}
			}
		}()
	}

	wg.Wait()
	uiprogress.Stop()
	close(errs)

	for err := range errs {
		return err
	}

	return nil
}
