package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/td0m/listopia/pkg/persist"
	"github.com/td0m/listopia/pkg/task"
)

var (
	years  = flag.Int("years", 10, "Years of tasks to generate")
	perDay = flag.Int("per-day", 30, "Tasks created per day")
	file   = flag.String("file", filepath.Join(os.TempDir(), "listopia-estimate.json"), "Where to write the generated task file")
)

func main() {
	flag.Parse()
	total := 365 * *perDay * *years
	p := persist.InJSON(*file)

	start := time.Now().AddDate(-*years, 0, 0)
	tasks := make([]task.Task, total)
	for i := range tasks {
		at := start.Add(time.Duration(i) * 24 * time.Hour / time.Duration(*perDay))
		tasks[i] = task.New(task.ID(i+1), randomString(10+rand.Intn(50)), at)
		// a third get a status change so updatedAt is populated too
		if i%3 == 0 {
			status := task.Statuses[rand.Intn(len(task.Statuses))]
			check(tasks[i].SetStatus(string(status), at.Add(time.Hour)))
		}
	}
	s := task.NewStore(tasks)
	s.Reindex()

	writeTime := measureTime(func() {
		check(p.Save(s.All()))
	})

	var loaded []task.Task
	readTime := measureTime(func() {
		var err error
		loaded, err = p.Load()
		check(err)
	})

	info, err := os.Stat(*file)
	check(err)
	fmt.Printf("Tasks: %d years, %d per day (%d total, %d read back)\n", *years, *perDay, total, len(loaded))
	fmt.Printf("File size: %dMB\n", info.Size()/1024/1024)
	fmt.Printf("Write time: %dms\n", writeTime.Milliseconds())
	fmt.Printf("Read time: %dms\n", readTime.Milliseconds())
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func measureTime(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}

const letters = "abcdefghijklmnopqrstuvwxyz ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomString(l int) string {
	b := make([]byte, l)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	// descriptions are trimmed on create
	b[0], b[l-1] = 'x', 'x'
	return string(b)
}
