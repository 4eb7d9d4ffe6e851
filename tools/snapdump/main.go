package main

import (
	"fmt"
	"os"
	"time"

	"skrillax-agent/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "header":
		if len(os.Args) < 3 {
			fmt.Println("Usage: snapdump header <file.sksn>")
			return
		}
		f, err := os.Open(os.Args[2])
		if err != nil {
			fmt.Printf("Open failed: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		h, err := storage.ReadHeader(f)
		if err != nil {
			fmt.Printf("Invalid snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("version=%d tick=%d saved=%s characters=%d body=%dB\n",
			h.Version, h.Tick, time.UnixMilli(h.Timestamp).Format(time.RFC3339), h.Count, h.BodyLen)
	case "list":
		if len(os.Args) < 3 {
			fmt.Println("Usage: snapdump list <file.sksn>")
			return
		}
		svc := &storage.SnapshotService{}
		snap, err := svc.Load(os.Args[2])
		if err != nil {
			fmt.Printf("Invalid snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("tick %d, %d characters\n", snap.Tick, len(snap.Characters))
		for _, c := range snap.Characters {
			state := "alive"
			if c.Dead {
				state = "dead"
			}
			fmt.Printf("  #%-6d %-16s %-8s lv%-3d sp=%-6d gold=%-8d masteries=%d skills=%d %s\n",
				c.ID, c.Name, c.Race, c.Level, c.SP, c.Gold, len(c.Masteries), len(c.Skills), state)
		}
	default:
		printHelp()
	}
}

func printHelp() {
	fmt.Println(`Snapshot Utility - просмотр файлов снимков
Commands:
  header <file>   - заголовок снимка без распаковки тела
  list <file>     - персонажи из снимка`)
}
