/*
Copyright © 2026 Red Hat, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package interpreter

import (
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/rpn-interpreter/types"
)

// Messages
const (
	databasePrintHistoryForCleanupOperationFailedMessage = "Print records from `evaluations` table prepared for cleanup failed"
	databaseCleanupHistoryOperationFailedMessage         = "Cleanup records from `evaluations` table failed"
	rowsDeletedMessage                                   = "Rows deleted"
)

// cleanupOperationSpecified returns true if any history maintenance
// operation has been selected on command line
func cleanupOperationSpecified(cliFlags types.CliFlags) bool {
	return cliFlags.PrintHistory || cliFlags.PerformCleanup
}

// PerformCleanupOperation function performs selected cleanup operation
func PerformCleanupOperation(storage Storage, cliFlags types.CliFlags) error {
	switch {
	case cliFlags.PrintHistory:
		return printHistoryForCleanup(storage, cliFlags)
	case cliFlags.PerformCleanup:
		return performHistoryCleanup(storage, cliFlags)
	default:
		return &UnknownOperationError{}
	}
}

// printHistoryForCleanup function prints all records from `evaluations`
// table that are older than specified max age.
func printHistoryForCleanup(storage Storage, cliFlags types.CliFlags) error {
	err := storage.PrintHistoryForCleanup(cliFlags.MaxAge)
	if err != nil {
		log.Error().Err(err).Msg(databasePrintHistoryForCleanupOperationFailedMessage)
		return err
	}

	return nil
}

// performHistoryCleanup function deletes all records from `evaluations`
// table that are older than specified max age.
func performHistoryCleanup(storage Storage, cliFlags types.CliFlags) error {
	affected, err := storage.CleanupHistory(cliFlags.MaxAge)
	if err != nil {
		log.Error().Err(err).Msg(databaseCleanupHistoryOperationFailedMessage)
		return err
	}
	log.Info().Int(rowsDeletedMessage, affected).Msg("Cleanup `evaluations` finished")

	return nil
}
