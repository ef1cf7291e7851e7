/*
keyboards.go - Logical keyboard construction

PURPOSE:
  Builds the inline keyboards for every view: flow menus, the paginated item
  picker, the 7-day date picker, and stock-overview navigation. Callback
  payloads use a compact prefix scheme so one parser handles both flows:

    <flow>_items_page_<n>   open item picker at page n
    <flow>_add_<idx>        increment catalog item idx
    <flow>_remove_<idx>     decrement catalog item idx
    <flow>_items_back       back to the flow menu
    <flow>_date_open        open the date picker
    <flow>_date_<iso>       select a return date
    <flow>_date_back        back to the flow menu
    <flow>_confirm          commit the basket
    back_main               back to the main menu
    stock_page_<n>          stock overview page n

  <flow> is "order" or "return"; <idx> is the catalog index of the item.
*/
package bot

import (
	"fmt"
	"time"

	"github.com/warp/gear-depot/catalog"
	"github.com/warp/gear-depot/depot"
)

// itemsPerPage is the page size of the item picker.
const itemsPerPage = 10

// mainMenuRows is the persistent reply keyboard.
func mainMenuRows() [][]string {
	return [][]string{
		{MenuOrder},
		{MenuStock},
		{MenuReturn},
	}
}

// orderMenu is the order-flow menu.
func orderMenu() Keyboard {
	return Keyboard{
		{{Label: "🎛 Equipment", Data: "order_items_page_0"}},
		{{Label: "📅 Return date", Data: "order_date_open"}},
		{{Label: "✅ Confirm", Data: "order_confirm"}},
		{{Label: "⬅️ Back", Data: "back_main"}},
	}
}

// returnMenu is the return-flow menu.
func returnMenu() Keyboard {
	return Keyboard{
		{{Label: "📅 Pick date", Data: "return_date_open"}},
		{{Label: "🎛 Pick items", Data: "return_items_page_0"}},
		{{Label: "✅ Accept return", Data: "return_confirm"}},
		{{Label: "⬅️ Back", Data: "back_main"}},
	}
}

// flowMenu returns the menu keyboard and its title for a flow prefix.
func flowMenu(flow string) (string, Keyboard) {
	if flow == "return" {
		return textReturnMenu, returnMenu()
	}
	return textOrderMenu, orderMenu()
}

// dateKeyboard offers the 7 upcoming calendar days, 3 per row, plus a back
// control. Labels are day.month; payloads carry the ISO date.
func dateKeyboard(flow string, now time.Time) Keyboard {
	var kb Keyboard
	var row []Button
	for i := 1; i <= 7; i++ {
		day := now.AddDate(0, 0, i)
		row = append(row, Button{
			Label: day.Format("02.01"),
			Data:  fmt.Sprintf("%s_date_%s", flow, day.Format("2006-01-02")),
		})
		if len(row) == 3 {
			kb = append(kb, row)
			row = nil
		}
	}
	if len(row) > 0 {
		kb = append(kb, row)
	}
	kb = append(kb, []Button{{Label: "⬅️ Back", Data: flow + "_date_back"}})
	return kb
}

// itemsKeyboard renders one page of the catalog picker: an add/remove button
// pair per item, nav arrows when there are neighboring pages, and a back
// control.
func itemsKeyboard(flow string, page int) Keyboard {
	start, end, pages := depot.Paginate(catalog.Len(), itemsPerPage, page)

	var kb Keyboard
	items := catalog.Items()
	for idx := start; idx < end; idx++ {
		kb = append(kb, []Button{
			{Label: "➕ " + items[idx], Data: fmt.Sprintf("%s_add_%d", flow, idx)},
			{Label: "➖ " + items[idx], Data: fmt.Sprintf("%s_remove_%d", flow, idx)},
		})
	}

	var nav []Button
	if page > 0 {
		nav = append(nav, Button{Label: "⬅️", Data: fmt.Sprintf("%s_items_page_%d", flow, page-1)})
	}
	if page < pages-1 {
		nav = append(nav, Button{Label: "➡️", Data: fmt.Sprintf("%s_items_page_%d", flow, page+1)})
	}
	if len(nav) > 0 {
		kb = append(kb, nav)
	}

	kb = append(kb, []Button{{Label: "⬅️ Back", Data: flow + "_items_back"}})
	return kb
}

// stockNav returns prev/next navigation for the stock overview, or nil when
// everything fits on one page.
func stockNav(page, pages int) *Keyboard {
	var nav []Button
	if page > 0 {
		nav = append(nav, Button{Label: "⬅️", Data: fmt.Sprintf("stock_page_%d", page-1)})
	}
	if page < pages-1 {
		nav = append(nav, Button{Label: "➡️", Data: fmt.Sprintf("stock_page_%d", page+1)})
	}
	if len(nav) == 0 {
		return nil
	}
	kb := Keyboard{nav}
	return &kb
}
