package main

import (
	"log"

	"github.com/rawbytedev/untagged/internal/untaggedcmd"
)

func main() {
	if err := untaggedcmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
