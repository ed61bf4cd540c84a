package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"
)

func CreateSpreadsheet(ctx context.Context, srv *sheets.Service, title string) (*sheets.Spreadsheet, error) {
	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: title,
		},
	}

	return srv.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
}

// MoveSpreadsheet re-parents the spreadsheet under folderId.
func MoveSpreadsheet(ctx context.Context, spreadsheetId string, driveSrv *drive.Service, folderId string) error {
	file, err := driveSrv.Files.Get(spreadsheetId).Fields("id, parents").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("MoveSpreadsheet: failed to get file: %w", err)
	}

	call := driveSrv.Files.Update(file.Id, &drive.File{}).AddParents(folderId)
	if len(file.Parents) > 0 {
		call = call.RemoveParents(file.Parents[0])
	}

	if _, err := call.Context(ctx).Do(); err != nil {
		return fmt.Errorf("MoveSpreadsheet: failed to move file: %w", err)
	}

	return nil
}

func AppendRows(ctx context.Context, srv *sheets.Service, spreadsheetId string, sheetName string, values [][]interface{}) error {
	row := &sheets.ValueRange{
		Values: values,
	}

	response, err := srv.Spreadsheets.Values.Append(spreadsheetId, sheetName, row).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return err
	}

	if response.HTTPStatusCode != 200 {
		return fmt.Errorf("invalid http status code: %v", response.HTTPStatusCode)
	}

	return nil
}

func fetchRows(ctx context.Context, srv *sheets.Service, spreadsheetId string, sheetName string, cells string) ([][]interface{}, error) {
	sheetRange := fmt.Sprintf("%s!%s", sheetName, cells)
	response, err := srv.Spreadsheets.Values.Get(spreadsheetId, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	if response.HTTPStatusCode != 200 {
		return nil, fmt.Errorf("invalid http status code: %v", response.HTTPStatusCode)
	}

	return response.Values, nil
}
