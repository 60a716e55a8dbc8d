package infobot_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/infobot"
	"github.com/aretw0/infobot/pkg/catalog"
	"github.com/aretw0/infobot/pkg/domain"
)

// ExampleBot_Ask walks one conversation through the list, focus and attribute rules.
// Sessions live in memory unless WithSessionStore says otherwise.
func ExampleBot_Ask() {
	store, err := catalog.New([]domain.Record{
		{Name: "Alpha College", Location: "Boston, MA", TuitionFee: 30000},
		{Name: "Beta College", Location: "Denver, CO", TuitionFee: 20000},
	})
	if err != nil {
		log.Fatal(err)
	}

	bot, err := infobot.New(store)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	for _, utterance := range []string{"hello", "list colleges", "Boston", "alpha", "tuition fees"} {
		reply, err := bot.Ask(ctx, "demo", utterance)
		if err != nil {
			log.Fatal(err)
		}
		if reply.Intent == domain.IntentIdentify {
			// The full profile is long; the focus is what matters here.
			fmt.Printf("[%s] focused on %s\n", reply.Intent, reply.Session.FocusedEntity)
			continue
		}
		fmt.Printf("[%s] %s\n", reply.Intent, reply.Response)
	}
	// Output:
	// [greeting] Hello! I'm happy to assist you with any college information you need. Please mention the college name.
	// [list_prompt] Please specify the location to list colleges.
	// [list_answer] Colleges in Boston: Alpha College.
	// [identify] focused on Alpha College
	// [attribute] The tuition fees amount to $30000.
}

// ExampleBot_Compare contrasts two colleges outside any conversation.
func ExampleBot_Compare() {
	store, err := catalog.New([]domain.Record{
		{Name: "Alpha College", TuitionFee: 30000},
		{Name: "Beta College", TuitionFee: 20000},
	})
	if err != nil {
		log.Fatal(err)
	}
	bot, err := infobot.New(store)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(bot.Compare("alpha", ""))
	// Output:
	// One or both college names are incorrect.
}
