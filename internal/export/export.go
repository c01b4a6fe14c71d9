// Package export renders task lists as XML documents.
package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/taskenda/taskenda-backend/internal/models"
)

// TasksXML builds an XML document for the given owner's tasks:
//
//	<tasks owner="alice" count="2">
//	  <task id="1" finished="false" important="true">
//	    <title>...</title>
//	    <description>...</description>
//	    <date>2026-08-30T00:00:00Z</date>
//	  </task>
//	</tasks>
func TasksXML(owner string, tasks []models.Task) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("tasks")
	root.CreateAttr("owner", owner)
	root.CreateAttr("count", strconv.Itoa(len(tasks)))

	for _, t := range tasks {
		el := root.CreateElement("task")
		el.CreateAttr("id", strconv.FormatInt(t.ID, 10))
		el.CreateAttr("finished", strconv.FormatBool(t.Finished))
		el.CreateAttr("important", strconv.FormatBool(t.Important))
		el.CreateElement("title").SetText(t.Title)
		el.CreateElement("description").SetText(t.Description)
		el.CreateElement("date").SetText(t.Date.UTC().Format(time.RFC3339))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize tasks: %w", err)
	}
	return out, nil
}
