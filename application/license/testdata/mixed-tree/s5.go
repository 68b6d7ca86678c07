// Copyright 2018 The Android Open Source Project

package s5
