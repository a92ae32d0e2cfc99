package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ragvault/internal/api"
	"github.com/dmitrijs2005/ragvault/internal/client/services"
	"github.com/dmitrijs2005/ragvault/internal/common"
	"github.com/spf13/cobra"
)

func (a *App) submitCommand() *cobra.Command {
	var (
		req   api.SubmitItemRequest
		image string
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Add a shirt to the vault, optionally with a photo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if req.Subject, err = a.valueOrPrompt(req.Subject, "Subject (band, film, event...)"); err != nil {
				return err
			}
			if req.Category, err = a.valueOrPrompt(req.Category, "Category"); err != nil {
				return err
			}

			v, err := a.vault.Submit(commandContext(cmd), services.SubmitInput{Item: req, ImagePath: image})
			if v != nil && err != nil {
				fmt.Fprintln(a.out, formatItemShort(v.Item))
				fmt.Fprintln(a.out, subtleStyle.Render(fmt.Sprintf("retry with: ragvault upload-image %s --image %s", v.Item.ID, image)))
			}
			if err != nil {
				return err
			}
			success(a.out, "Submitted %s", v.Item.ID)
			printItemDetail(a.out, v)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Subject, "subject", "", "what the shirt is about")
	f.StringVar(&req.Title, "title", "", "print title or tour name")
	f.StringVar(&req.Brand, "brand", "", "blank manufacturer")
	f.StringVar(&req.Category, "category", "", "catalog category")
	f.StringVar(&req.Year, "year", "", "four-digit year")
	f.StringSliceVar(&req.Tags, "tag", nil, "tag, repeatable")
	f.StringVar(&req.StitchType, "stitch", "", "single or double stitch")
	f.StringVar(&req.Origin, "origin", "", "country of manufacture")
	f.StringVar(&image, "image", "", "path to a JPEG, PNG or WebP photo")
	return requireLogin(cmd)
}

func (a *App) uploadImageCommand() *cobra.Command {
	var image string
	cmd := &cobra.Command{
		Use:   "upload-image <item-id>",
		Short: "Attach or replace the photo of an item you contributed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if image == "" {
				return fmt.Errorf("%w: --image is required", common.ErrorValidation)
			}
			v, err := a.vault.UploadImage(commandContext(cmd), args[0], image)
			if err != nil {
				return err
			}
			success(a.out, "Image published for %s", v.Item.ID)
			printItemDetail(a.out, v)
			return nil
		},
	}
	cmd.Flags().StringVar(&image, "image", "", "path to a JPEG, PNG or WebP photo")
	return requireLogin(cmd)
}

func (a *App) verifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <item-id>",
		Short: "Vouch that an item's details are accurate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()
			resp, err := a.vault.Verify(ctx, args[0])
			if err != nil {
				return err
			}
			msg := fmt.Sprintf("Verified %s (%d verifications)", args[0], resp.VerificationCount)
			if resp.Verified {
				msg += " " + verifiedStyle.Render("✓ community verified")
			}
			success(a.out, "%s", msg)
			return nil
		},
	}
	return requireLogin(cmd)
}

// parseAssignments turns ["year=1991", "origin=USA"] into a field map.
func parseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("expected field=value, got %q", p)
		}
		out[k] = v
	}
	return out, nil
}
