package recipes

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/crucial707/recipe-api/cmd/cli/client"
	"github.com/crucial707/recipe-api/cmd/cli/output"
	"github.com/crucial707/recipe-api/internal/dto"
	"github.com/spf13/cobra"
)

var tableHeaders = []string{"ID", "Title", "Ingredients", "Prep", "Cook", "Total"}

// ==========================
// Init Recipes
// ==========================
func InitRecipes(rootCmd *cobra.Command) {
	recipesCmd := &cobra.Command{
		Use:   "recipe",
		Short: "Manage recipes",
	}

	recipesCmd.AddCommand(
		listRecipesCmd(),
		getRecipeCmd(),
		createRecipeCmd(),
		updateRecipeCmd(),
		deleteRecipeCmd(),
	)

	rootCmd.AddCommand(recipesCmd)
}

func row(r dto.FetchRecipeDto) []any {
	return []any{r.ID, r.Title, strings.Join(r.Ingredients, ", "), r.PrepTime, r.CookTime, r.TotalTime}
}

func render(cmd *cobra.Command, asJSON bool, v any, recipes ...dto.FetchRecipeDto) error {
	if asJSON {
		return output.RenderJSON(cmd.OutOrStdout(), v)
	}
	rows := make([][]any, 0, len(recipes))
	for _, r := range recipes {
		rows = append(rows, row(r))
	}
	output.RenderTable(cmd.OutOrStdout(), tableHeaders, rows)
	return nil
}

// ==========================
// LIST
// ==========================
func listRecipesCmd() *cobra.Command {
	var limit, offset int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if limit > 0 {
				q.Set("limit", strconv.Itoa(limit))
			}
			if offset > 0 {
				q.Set("offset", strconv.Itoa(offset))
			}
			path := "/recipes"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			var list []dto.FetchRecipeDto
			if err := client.Call(http.MethodGet, path, nil, &list, false); err != nil {
				return err
			}
			if list == nil {
				list = []dto.FetchRecipeDto{}
			}
			return render(cmd, asJSON, list, list...)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of recipes (0 = all)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of recipes to skip")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output raw JSON")
	return cmd
}

// ==========================
// GET
// ==========================
func getRecipeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show one recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rec dto.FetchRecipeDto
			if err := client.Call(http.MethodGet, "/recipes/"+url.PathEscape(args[0]), nil, &rec, false); err != nil {
				return err
			}
			if asJSON {
				return output.RenderJSON(cmd.OutOrStdout(), rec)
			}
			render(cmd, false, nil, rec)
			if rec.Instructions != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", rec.Instructions)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output raw JSON")
	return cmd
}

// recipeFlags binds the writable recipe fields to cmd's flags.
type recipeFlags struct {
	title, image, instructions string
	ingredients                []string
	prep, cook, total          int
}

func (f *recipeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Recipe title")
	cmd.Flags().StringVar(&f.image, "image", "", "Recipe image URL")
	cmd.Flags().StringVar(&f.instructions, "instructions", "", "Preparation instructions")
	cmd.Flags().StringArrayVar(&f.ingredients, "ingredient", nil, "Ingredient (repeatable, order kept)")
	cmd.Flags().IntVar(&f.prep, "prep", 0, "Prep time in minutes")
	cmd.Flags().IntVar(&f.cook, "cook", 0, "Cook time in minutes")
	cmd.Flags().IntVar(&f.total, "total", 0, "Total time in minutes")
}

// changed returns a payload holding only the flags the user set.
func (f *recipeFlags) changed(cmd *cobra.Command) map[string]any {
	payload := map[string]any{}
	set := func(flag, key string, v any) {
		if cmd.Flags().Changed(flag) {
			payload[key] = v
		}
	}
	set("title", "title", f.title)
	set("image", "recipeImageUrl", f.image)
	set("instructions", "instructions", f.instructions)
	set("ingredient", "ingredients", f.ingredients)
	set("prep", "prepTime", f.prep)
	set("cook", "cookTime", f.cook)
	set("total", "totalTime", f.total)
	return payload
}

// ==========================
// CREATE
// ==========================
func createRecipeCmd() *cobra.Command {
	var f recipeFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a recipe",
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.title == "" {
				return errors.New("--title is required")
			}
			var rec dto.FetchRecipeDto
			if err := client.Call(http.MethodPost, "/recipes", f.changed(cmd), &rec, true); err != nil {
				return err
			}
			return render(cmd, asJSON, rec, rec)
		},
	}

	f.bind(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output raw JSON")
	return cmd
}

// ==========================
// UPDATE
// ==========================
func updateRecipeCmd() *cobra.Command {
	var f recipeFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update the given fields of a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := f.changed(cmd)
			if len(payload) == 0 {
				return errors.New("nothing to update: set at least one field flag")
			}
			var rec dto.FetchRecipeDto
			if err := client.Call(http.MethodPatch, "/recipes/"+url.PathEscape(args[0]), payload, &rec, true); err != nil {
				return err
			}
			return render(cmd, asJSON, rec, rec)
		},
	}

	f.bind(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output raw JSON")
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteRecipeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Call(http.MethodDelete, "/recipes/"+url.PathEscape(args[0]), nil, nil, true); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Recipe deleted")
			return nil
		},
	}
}
