/*
Package infobot is a turn-based conversational front end over a fixed catalog of colleges.

Each utterance is classified against the state of its conversation (the college in focus
and any pending question) and answered deterministically from the catalog: identifying a
college, answering a question about its attributes, listing colleges in a location, or
comparing two colleges by tuition.

# Concept

The catalog is loaded once and never mutated. Conversations are explicit values held by a
session store (memory or Redis), so any number of users can talk to one Bot at the same
time. Turns on the same conversation are serialized; turns on different conversations run
in parallel.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/infobot"
	)

	func main() {
		ctx := context.Background()

		bot, err := infobot.Open(ctx, "colleges.xlsx")
		if err != nil {
			log.Fatal(err)
		}

		for _, utterance := range []string{"hello", "Springfield", "what are the tuition fees?"} {
			reply, err := bot.Ask(ctx, "session-123", utterance)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Println(reply.Response)
		}
	}
*/
package infobot
