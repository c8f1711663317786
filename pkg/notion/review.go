package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
)

// ReviewTask is a manual data review item. One task is filed per suspected
// duplicate group so an editor can decide which features to merge.
type ReviewTask struct {
	Title   string
	Source  string
	Matches []string
}

// FileReviewTask creates a page for the task in the review database unless a
// page with the same title already exists. Returns true when a page was
// created.
func FileReviewTask(ctx context.Context, c Client, dbID string, task ReviewTask) (bool, error) {
	exists, err := taskExists(ctx, c, dbID, task.Title)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if _, err := c.CreatePage(ctx, buildPageRequest(dbID, task)); err != nil {
		return false, eris.Wrapf(err, "notion: file review task %q", task.Title)
	}
	return true, nil
}

// taskExists checks the review database for a page titled exactly like the
// task. Re-running the duplicates command must not file the same group twice.
func taskExists(ctx context.Context, c Client, dbID, title string) (bool, error) {
	resp, err := c.QueryDatabase(ctx, dbID, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: "Name",
			RichText: &notionapi.TextFilterCondition{
				Equals: title,
			},
		},
		PageSize: 1,
	})
	if err != nil {
		return false, eris.Wrapf(err, "notion: look up review task %q", title)
	}
	return len(resp.Results) > 0, nil
}

func buildPageRequest(dbID string, task ReviewTask) *notionapi.PageCreateRequest {
	children := make([]notionapi.Block, 0, len(task.Matches)+1)
	children = append(children, paragraphBlock(fmt.Sprintf("Source file: %s", task.Source)))
	for _, m := range task.Matches {
		children = append(children, bulletBlock(m))
	}

	return &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(dbID),
		},
		Properties: notionapi.Properties{
			"Name": notionapi.TitleProperty{
				Title: []notionapi.RichText{
					{Text: &notionapi.Text{Content: task.Title}},
				},
			},
			"Status": notionapi.StatusProperty{
				Status: notionapi.Option{Name: "Needs Review"},
			},
		},
		Children: children,
	}
}

func paragraphBlock(text string) notionapi.Block {
	return &notionapi.ParagraphBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeParagraph,
		},
		Paragraph: notionapi.Paragraph{
			RichText: []notionapi.RichText{
				{Text: &notionapi.Text{Content: text}},
			},
		},
	}
}

func bulletBlock(text string) notionapi.Block {
	return &notionapi.BulletedListItemBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeBulletedListItem,
		},
		BulletedListItem: notionapi.ListItem{
			RichText: []notionapi.RichText{
				{Text: &notionapi.Text{Content: text}},
			},
		},
	}
}
