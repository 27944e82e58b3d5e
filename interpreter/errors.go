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

// KafkaBrokerError represent an error related to Kafka initialization
type KafkaBrokerError struct {
	Err error
}

func (e *KafkaBrokerError) Error() string {
	return "KafkaBrokerError: " + e.Err.Error()
}

func (e *KafkaBrokerError) Unwrap() error {
	return e.Err
}

// StorageError is related to any storage setup error
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return "StorageError: " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// UnknownOperationError is returned when no cleanup operation is selected
type UnknownOperationError struct{}

func (e *UnknownOperationError) Error() string {
	return "Unknown operation selected"
}
