// Command movebyte compresses chess games to roughly one byte per ply and
// keeps them in a local game database.
//
// Usage:
//
//	movebyte [-db dir] import [-white W] [-black B] [-event E] [-date D] [-result R] <movetext-file>
//	movebyte [-db dir] show <id>
//	movebyte [-db dir] list
//	movebyte [-db dir] stats
//	movebyte roundtrip <movetext-file>
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/movebyte/movebyte/board"
	"github.com/movebyte/movebyte/codec"
	"github.com/movebyte/movebyte/internal/storage"
)

var dbDir = flag.String("db", "", "database directory (default: platform data dir)")

func main() {
	flag.Parse()
	if *dbDir == "" {
		*dbDir = os.Getenv("MOVEBYTE_DB")
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "import":
		err = runImport(args[1:])
	case "show":
		err = runShow(args[1:])
	case "list":
		err = runList()
	case "stats":
		err = runStats()
	case "roundtrip":
		err = runRoundtrip(args[1:])
	default:
		log.Fatalf("unknown command %q", args[0])
	}
	if err != nil {
		log.Fatal(err)
	}
}

func openStore() (*storage.Store, error) {
	return storage.Open(*dbDir)
}

func loadMoves(path string) ([]board.Move, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return board.ParseGame(board.NewPosition(), string(text))
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	white := fs.String("white", "", "white player")
	black := fs.String("black", "", "black player")
	event := fs.String("event", "", "event name")
	date := fs.String("date", "", "game date")
	result := fs.String("result", "*", "game result")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("import: want exactly one movetext file")
	}

	moves, err := loadMoves(fs.Arg(0))
	if err != nil {
		return err
	}
	data, err := codec.EncodeGame(moves)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Put(&storage.GameRecord{
		White:    *white,
		Black:    *black,
		Event:    *event,
		Date:     *date,
		Result:   *result,
		PlyCount: len(moves),
		Moves:    data,
	})
	if err != nil {
		return err
	}
	log.Printf("stored %s: %d plies in %s", id, len(moves), humanize.Bytes(uint64(len(data))))
	return nil
}

func runShow(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("show: want exactly one game id")
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(args[0])
	if err != nil {
		return err
	}
	moves, err := codec.DecodeGame(rec.Moves)
	if err != nil {
		return err
	}

	if rec.White != "" || rec.Black != "" {
		fmt.Printf("%s - %s  %s  %s %s\n", rec.White, rec.Black, rec.Result, rec.Event, rec.Date)
	}
	fmt.Println(formatGame(moves, rec.Result))
	return nil
}

func runList() error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.List()
	if err != nil {
		return err
	}
	for _, rec := range recs {
		fmt.Printf("%s  %4d plies  %4d bytes  %s - %s  %s\n",
			rec.ID, rec.PlyCount, len(rec.Moves), rec.White, rec.Black, rec.Result)
	}
	return nil
}

func runStats() error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := store.Stats()
	if err != nil {
		return err
	}
	fmt.Println(st)
	return nil
}

func runRoundtrip(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("roundtrip: want exactly one movetext file")
	}
	moves, err := loadMoves(args[0])
	if err != nil {
		return err
	}
	data, err := codec.EncodeGame(moves)
	if err != nil {
		return err
	}
	back, err := codec.DecodeGame(data)
	if err != nil {
		return err
	}
	if len(back) != len(moves) {
		return fmt.Errorf("roundtrip: %d plies in, %d out", len(moves), len(back))
	}
	for i := range moves {
		if moves[i] != back[i] {
			return fmt.Errorf("roundtrip: ply %d decoded as %v, want %v", i+1, back[i], moves[i])
		}
	}
	if bytes.ContainsAny(data, "\n\r") {
		return fmt.Errorf("roundtrip: stream contains a line terminator byte")
	}
	log.Printf("ok: %d plies in %d bytes (%.2f bytes/ply)",
		len(moves), len(data), float64(len(data))/float64(len(moves)))
	return nil
}

// formatGame renders a move list as numbered SAN movetext.
func formatGame(moves []board.Move, result string) string {
	pos := board.NewPosition()
	var sb strings.Builder
	for i, m := range moves {
		if i%2 == 0 {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%d.", i/2+1)
		} else {
			sb.WriteByte(' ')
		}
		sb.WriteString(m.ToSAN(pos))
		pos.Play(m)
	}
	if result != "" && result != "*" {
		sb.WriteByte(' ')
		sb.WriteString(result)
	}
	return sb.String()
}
