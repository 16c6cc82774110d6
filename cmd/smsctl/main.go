// smsctl is a terminal consumer of the campaign SDK: it subscribes to the
// endpoint groups, renders their results, and triggers mutations, which is
// all the dashboard views ever did.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"sms-campaign-client/internal/api"
	"sms-campaign-client/internal/cache"
	"sms-campaign-client/internal/config"
	"sms-campaign-client/internal/gateway"
	"sms-campaign-client/internal/identity"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: smsctl <command> [args]

Commands:
  contacts list                    list contacts
  contacts create <phone> [name]   create a contact
  contacts upload <file> [groupId] import contacts from a file
  groups list                      list contact groups
  groups create <name>             create a contact group
  senders list                     list sender IDs
  sms send <senderId> <to> <msg>   send a single SMS
  jobs list                        list SMS jobs
  transactions list                list payment transactions
  profile                          show the current profile
  dashboard                        show dashboard stats`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg := config.LoadConfig()

	var tokens identity.TokenSource
	if cfg.TokenURL != "" {
		tokens = identity.NewProvider(cfg.TokenURL, cfg.LoginURL, cfg.ClientID, cfg.RefreshToken)
	} else {
		tokens = &identity.StaticTokenSource{AccessToken: cfg.RefreshToken}
	}

	gw := gateway.New(cfg.APIBaseURL, tokens)
	store := cache.NewStore(cfg.CacheGraceTime)
	client := api.NewClient(gw, store)

	ctx := context.Background()
	if err := run(ctx, client, os.Args[1:]); err != nil {
		log.Fatalf("smsctl: %v", err)
	}
}

func run(ctx context.Context, client *api.Client, args []string) error {
	switch args[0] {
	case "contacts":
		if len(args) < 2 {
			usage()
		}
		switch args[1] {
		case "list":
			page, err := client.Contacts.List(ctx, api.ListParams{})
			if err != nil {
				return err
			}
			return render(page)
		case "create":
			if len(args) < 3 {
				usage()
			}
			req := api.CreateContactRequest{Phone: args[2]}
			if len(args) > 3 {
				req.Name = args[3]
			}
			contact, err := client.Contacts.Create(ctx, req)
			if err != nil {
				return err
			}
			return render(contact)
		case "upload":
			if len(args) < 3 {
				usage()
			}
			f, err := os.Open(args[2])
			if err != nil {
				return err
			}
			defer f.Close()
			groupID := ""
			if len(args) > 3 {
				groupID = args[3]
			}
			result, err := client.Contacts.Upload(ctx, args[2], f, groupID)
			if err != nil {
				return err
			}
			return render(result)
		}
	case "groups":
		if len(args) < 2 {
			usage()
		}
		switch args[1] {
		case "list":
			page, err := client.Groups.List(ctx, api.ListParams{})
			if err != nil {
				return err
			}
			return render(page)
		case "create":
			if len(args) < 3 {
				usage()
			}
			group, err := client.Groups.Create(ctx, api.ContactGroupRequest{Name: args[2]})
			if err != nil {
				return err
			}
			return render(group)
		}
	case "senders":
		page, err := client.Senders.List(ctx, api.ListParams{})
		if err != nil {
			return err
		}
		return render(page)
	case "sms":
		if len(args) < 5 || args[1] != "send" {
			usage()
		}
		job, err := client.Sms.SendSingle(ctx, api.SendSingleRequest{
			SenderID: args[2],
			To:       args[3],
			Message:  args[4],
		})
		if err != nil {
			return err
		}
		return render(job)
	case "jobs":
		page, err := client.Sms.ListJobs(ctx, api.ListParams{})
		if err != nil {
			return err
		}
		return render(page)
	case "transactions":
		page, err := client.Payments.ListTransactions(ctx, api.ListParams{})
		if err != nil {
			return err
		}
		return render(page)
	case "profile":
		profile, err := client.Profile.Get(ctx)
		if err != nil {
			return err
		}
		return render(profile)
	case "dashboard":
		stats, err := client.Dashboard.Stats(ctx)
		if err != nil {
			return err
		}
		return render(stats)
	}
	usage()
	return nil
}

func render(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
