package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"cancelflow-be/internal/pkg/logger"
	"cancelflow-be/pkg/cancelclient"
	"cancelflow-be/pkg/utils"
	"cancelflow-be/pkg/wizard"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

var (
	title   = color.New(color.FgCyan, color.Bold)
	offer   = color.New(color.FgGreen, color.Bold)
	muted   = color.New(color.FgHiBlack)
	warn    = color.New(color.FgYellow)
	failure = color.New(color.FgRed)
)

func main() {
	_ = godotenv.Load()

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	client := cancelclient.New(baseURL, os.Getenv("API_TOKEN"))
	ctx := context.Background()

	info, err := client.Session(ctx)
	if err != nil {
		failure.Printf("Could not load your session: %v\n", err)
		os.Exit(1)
	}
	sess, err := info.WizardSession()
	if err != nil {
		failure.Println(err)
		os.Exit(1)
	}

	muted.Printf("Signed in as %s\n\n", info.Email)

	ctrl := wizard.New(client, sess, logger.NewNopLogger())
	in := bufio.NewScanner(os.Stdin)

	for {
		var step wizard.Step
		var err error

		switch s := ctrl.Step().(type) {
		case wizard.ConfirmStep:
			title.Println("Hey mate, quick one before you go.")
			fmt.Printf("Your plan: %s/month\n", utils.FormatPrice(sess.MonthlyPrice))
			if ask(in, "Continue with cancellation?") {
				step, err = ctrl.Confirm(ctx)
			} else {
				step, err = ctrl.Abort()
			}

		case wizard.DownsellStep:
			title.Println("We built this to help you land the job, and we'd hate to see you go.")
			offer.Printf("Get $10 off: %s/month instead of %s\n", utils.FormatPrice(s.OfferPrice), utils.FormatPrice(s.CurrentPrice))
			if ask(in, "Accept the offer?") {
				step, err = ctrl.AcceptDownsell(ctx)
			} else {
				step, err = ctrl.DeclineDownsell()
			}

		case wizard.ReasonStep:
			title.Println("What's the main reason for cancelling?")
			for i, r := range s.Options {
				fmt.Printf("  %d) %s\n", i+1, r)
			}
			step, err = ctrl.SubmitReason(ctx, pick(in, s.Options))

		case wizard.SpecialDiscountStep:
			title.Println("Wait! We have a special offer for you.")
			offer.Printf("50%% off: %s/month instead of %s\n", utils.FormatPrice(s.OfferPrice), utils.FormatPrice(s.CurrentPrice))
			if ask(in, "Accept the special discount?") {
				step, err = ctrl.AcceptSpecialDiscount(ctx)
			} else {
				step, err = ctrl.DeclineSpecialDiscount()
			}

		case wizard.CompleteStep:
			title.Println("Your cancellation has been processed.")
			fmt.Println("You'll keep access until the end of your billing period.")
			step, err = ctrl.Finish()

		case wizard.ExitStep:
			if s.Destination == wizard.DestinationAccount {
				offer.Println("Great! Your discount has been applied. See you in your account.")
			} else {
				muted.Println("Back to home.")
			}
			return
		}

		if err != nil {
			if errors.Is(err, wizard.ErrInvalidReason) {
				warn.Println(err)
			} else {
				failure.Printf("Something went wrong: %v. Please try again.\n", err)
			}
			continue
		}
		if step != nil {
			fmt.Println()
		}
	}
}

func ask(in *bufio.Scanner, question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	if !in.Scan() {
		os.Exit(0)
	}
	answer := strings.ToLower(strings.TrimSpace(in.Text()))
	return answer == "y" || answer == "yes"
}

func pick(in *bufio.Scanner, options []string) string {
	fmt.Print("Choose a number: ")
	if !in.Scan() {
		os.Exit(0)
	}
	n, err := strconv.Atoi(strings.TrimSpace(in.Text()))
	if err != nil || n < 1 || n > len(options) {
		return ""
	}
	return options[n-1]
}
