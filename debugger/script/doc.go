// This file is part of GopherDW.
//
// GopherDW is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherDW is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherDW.  If not, see <https://www.gnu.org/licenses/>.

// Package script allows the debugger to record and replay debugging scripts.
// In this package we refer to this as scribing and rescribing.
//
// A script is a text file of commands, one per line. Commands can also be
// separated by semi-colons. Lines beginning with the # symbol are comments.
// The Scribe type writes the output of the debugger to the script as
// comments, so a scribed script is also a record of the session.
//
// Scripts can of course be handwritten. Invalid commands are replayed and the
// appropriate message printed to the terminal, exactly as if they had been
// entered by the operator.
//
// The Queue type holds the commands of a script until the debugger is ready
// for them. Commands from a script are not scribed.
package script
