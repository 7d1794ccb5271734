// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package bridge turns asynchronous triggers into events for the status loop.
//
// Three producers exist: real-time signals bound to blocks, the control
// socket, and the reapers of click workers. None of them touches slot data;
// they only send an Event on the channel the loop reads.
package bridge
